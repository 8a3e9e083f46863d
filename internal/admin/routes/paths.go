package routes

import "net/url"

// Screen paths linked from dashboards and overview cards.
const (
	AddPhotoPath = BasePath + "/addPhoto"
	AddVideoPath = BasePath + "/addVideo"
	AddPressPath = BasePath + "/addPress"
)

// ViewPhotoPath links to the photo detail screen.
func ViewPhotoPath(id string) string { return BasePath + "/view/" + url.PathEscape(id) }

// EditPhotoPath links to the photo summary shell.
func EditPhotoPath(id string) string { return BasePath + "/edit/" + url.PathEscape(id) }

// PlayVideoPath links to the video player screen.
func PlayVideoPath(id string) string { return BasePath + "/play/" + url.PathEscape(id) }

// EditVideoPath links to the video summary shell.
func EditVideoPath(id string) string { return BasePath + "/editVideo/" + url.PathEscape(id) }

// ReadPressPath links to the press reader screen.
func ReadPressPath(id string) string { return BasePath + "/read/" + url.PathEscape(id) }

// EditPressPath links to the press summary shell.
func EditPressPath(id string) string { return BasePath + "/editPress/" + url.PathEscape(id) }

// MessagePath links to the inbox message screen.
func MessagePath(id string) string { return BasePath + "/message/" + url.PathEscape(id) }

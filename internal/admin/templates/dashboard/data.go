// Package dashboard renders the back-office overview and the per-category dashboards.
package dashboard

import (
	"strconv"
	"time"

	"finitefield.org/campaign-site/internal/admin/listing"
	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
	"finitefield.org/campaign-site/internal/admin/templates/partials"
	"finitefield.org/campaign-site/internal/content"
)

// Card summarises one category on the overview.
type Card struct {
	Category routes.Category
	Label    string
	Count    int
	Href     string
	Note     string
}

// OverviewData is the overview page payload.
type OverviewData struct {
	Cards          []Card
	Unread         int
	RecentMessages []Row
	Errors         []string
}

// Row is one line of a dashboard table.
type Row struct {
	ID        string
	Title     string
	Subtitle  string
	Meta      string
	Href      string
	EditHref  string
	Badge     string
	BadgeTone string
}

// PageData is a category dashboard payload.
type PageData struct {
	Category   routes.Category
	Title      string
	BasePath   string
	AddHref    string
	AddLabel   string
	Query      listing.Query
	Rows       []Row
	Pagination partials.PaginationData
	Empty      string
	Error      string
}

var (
	photoAccessors = listing.Accessors[content.Photo]{
		Text:  func(p content.Photo) []string { return []string{p.Title, p.Caption} },
		Title: func(p content.Photo) string { return p.Title },
		Time:  func(p content.Photo) time.Time { return p.CreatedAt },
	}
	videoAccessors = listing.Accessors[content.Video]{
		Text:  func(v content.Video) []string { return []string{v.Title, v.Description} },
		Title: func(v content.Video) string { return v.Title },
		Time:  func(v content.Video) time.Time { return v.PublishedAt },
	}
	pressAccessors = listing.Accessors[content.PressArticle]{
		Text:  func(a content.PressArticle) []string { return []string{a.Title, a.Outlet, a.Summary} },
		Title: func(a content.PressArticle) string { return a.Title },
		Time:  func(a content.PressArticle) time.Time { return a.PublishedAt },
	}
	messageAccessors = listing.Accessors[content.Message]{
		Text:  func(m content.Message) []string { return []string{m.Name, m.Email, m.Subject, m.Body} },
		Title: func(m content.Message) string { return messageTitle(m) },
		Time:  func(m content.Message) time.Time { return m.ReceivedAt },
	}
)

// NewPhotoPage filters and paginates photos for the photo dashboard.
func NewPhotoPage(photos []content.Photo, q listing.Query) PageData {
	page := listing.Apply(photos, q, photoAccessors)
	rows := make([]Row, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, Row{
			ID:       p.ID,
			Title:    p.Title,
			Subtitle: helpers.Truncate(p.Caption, 80),
			Meta:     helpers.Date(p.CreatedAt, ""),
			Href:     routes.ViewPhotoPath(p.ID),
			EditHref: routes.EditPhotoPath(p.ID),
		})
	}
	return PageData{
		Category:   routes.CategoryPhoto,
		Title:      "Photo dashboard",
		BasePath:   routes.PhotoDashboard,
		AddHref:    routes.AddPhotoPath,
		AddLabel:   "Add photo",
		Query:      page.Query,
		Rows:       rows,
		Pagination: partials.NewPagination(routes.PhotoDashboard, page),
		Empty:      "No photos match.",
	}
}

// NewVideoPage filters and paginates videos for the video dashboard.
func NewVideoPage(videos []content.Video, q listing.Query) PageData {
	page := listing.Apply(videos, q, videoAccessors)
	rows := make([]Row, 0, len(page.Items))
	for _, v := range page.Items {
		rows = append(rows, Row{
			ID:        v.ID,
			Title:     v.Title,
			Subtitle:  helpers.Truncate(v.Description, 80),
			Meta:      helpers.Date(v.PublishedAt, ""),
			Href:      routes.PlayVideoPath(v.ID),
			EditHref:  routes.EditVideoPath(v.ID),
			Badge:     helpers.Duration(v.Duration()),
			BadgeTone: "info",
		})
	}
	return PageData{
		Category:   routes.CategoryVideo,
		Title:      "Video dashboard",
		BasePath:   routes.VideoDashboard,
		AddHref:    routes.AddVideoPath,
		AddLabel:   "Add video",
		Query:      page.Query,
		Rows:       rows,
		Pagination: partials.NewPagination(routes.VideoDashboard, page),
		Empty:      "No videos match.",
	}
}

// NewPressPage filters and paginates press articles for the press dashboard.
func NewPressPage(articles []content.PressArticle, q listing.Query) PageData {
	page := listing.Apply(articles, q, pressAccessors)
	rows := make([]Row, 0, len(page.Items))
	for _, a := range page.Items {
		rows = append(rows, Row{
			ID:       a.ID,
			Title:    a.Title,
			Subtitle: helpers.Truncate(a.Summary, 80),
			Meta:     helpers.Date(a.PublishedAt, ""),
			Href:     routes.ReadPressPath(a.ID),
			EditHref: routes.EditPressPath(a.ID),
			Badge:    a.Outlet,
		})
	}
	return PageData{
		Category:   routes.CategoryPress,
		Title:      "Press dashboard",
		BasePath:   routes.PressDashboard,
		AddHref:    routes.AddPressPath,
		AddLabel:   "Add press article",
		Query:      page.Query,
		Rows:       rows,
		Pagination: partials.NewPagination(routes.PressDashboard, page),
		Empty:      "No press articles match.",
	}
}

// NewMessagePage filters and paginates the inbox for the message dashboard.
func NewMessagePage(messages []content.Message, q listing.Query, now time.Time) PageData {
	page := listing.Apply(messages, q, messageAccessors)
	rows := make([]Row, 0, len(page.Items))
	for _, msg := range page.Items {
		rows = append(rows, messageRow(msg, now))
	}
	return PageData{
		Category:   routes.CategoryMessage,
		Title:      "Message dashboard",
		BasePath:   routes.MessageDashboard,
		Query:      page.Query,
		Rows:       rows,
		Pagination: partials.NewPagination(routes.MessageDashboard, page),
		Empty:      "The inbox is empty.",
	}
}

// Counts carries the collection sizes shown on the overview.
type Counts struct {
	Photos   int
	Videos   int
	Press    int
	Messages []content.Message
}

// NewOverview builds the overview payload.
func NewOverview(counts Counts, now time.Time, errs []string) OverviewData {
	unread := content.UnreadCount(counts.Messages)
	recent := make([]Row, 0, 5)
	for _, msg := range counts.Messages {
		if len(recent) == cap(recent) {
			break
		}
		recent = append(recent, messageRow(msg, now))
	}
	return OverviewData{
		Cards: []Card{
			{Category: routes.CategoryPhoto, Label: "Photos", Count: counts.Photos, Href: routes.PhotoDashboard},
			{Category: routes.CategoryVideo, Label: "Videos", Count: counts.Videos, Href: routes.VideoDashboard},
			{Category: routes.CategoryPress, Label: "Press", Count: counts.Press, Href: routes.PressDashboard},
			{Category: routes.CategoryMessage, Label: "Messages", Count: len(counts.Messages), Href: routes.MessageDashboard, Note: strconv.Itoa(unread) + " unread"},
		},
		Unread:         unread,
		RecentMessages: recent,
		Errors:         errs,
	}
}

func messageRow(msg content.Message, now time.Time) Row {
	row := Row{
		ID:       msg.ID,
		Title:    messageTitle(msg),
		Subtitle: msg.Name + " · " + msg.Email,
		Meta:     helpers.Relative(msg.ReceivedAt, now),
		Href:     routes.MessagePath(msg.ID),
	}
	if !msg.Read {
		row.Badge = "Unread"
		row.BadgeTone = "warning"
	}
	return row
}

func messageTitle(msg content.Message) string {
	if msg.Subject != "" {
		return msg.Subject
	}
	return helpers.Truncate(msg.Body, 60)
}

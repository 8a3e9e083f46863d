package routes

import "github.com/a-h/templ"

// BasePath is the mount point of the admin back office.
const BasePath = "/admin"

// Dashboard paths that sub-resource screens navigate back to.
const (
	PhotoDashboard   = BasePath + "/photoDashboard"
	VideoDashboard   = BasePath + "/videoDashboard"
	PressDashboard   = BasePath + "/pressDashboard"
	MessageDashboard = BasePath + "/messageDashboard"
)

// Category groups related administrative screens.
type Category string

const (
	CategoryPhoto   Category = "photo"
	CategoryVideo   Category = "video"
	CategoryPress   Category = "press"
	CategoryMessage Category = "message"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryPhoto, CategoryVideo, CategoryPress, CategoryMessage}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryPhoto:
		return "Photo"
	case CategoryVideo:
		return "Video"
	case CategoryPress:
		return "Press"
	case CategoryMessage:
		return "Message"
	default:
		return string(c)
	}
}

// Dashboard returns the dashboard path for the category, or "" when unknown.
func (c Category) Dashboard() string {
	switch c {
	case CategoryPhoto:
		return PhotoDashboard
	case CategoryVideo:
		return VideoDashboard
	case CategoryPress:
		return PressDashboard
	case CategoryMessage:
		return MessageDashboard
	default:
		return ""
	}
}

// Screen renders the view for a matched route using the captured wildcard values.
type Screen func(Params) templ.Component

// Descriptor describes one administrative sub-resource screen.
type Descriptor struct {
	Template        string
	Render          Screen
	ParentDashboard string
	Category        Category
}

// Registry is an ordered, read-only list of descriptors. Lookups return the first
// structural match, so overlapping templates must be registered most-specific-first.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry builds a registry from the descriptors in the given order.
func NewRegistry(descriptors ...Descriptor) *Registry {
	return &Registry{descriptors: append([]Descriptor(nil), descriptors...)}
}

// Descriptors returns a copy of the registered descriptors in order.
func (r *Registry) Descriptors() []Descriptor {
	if r == nil {
		return nil
	}
	return append([]Descriptor(nil), r.descriptors...)
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.descriptors)
}

// Screens supplies the render targets of the admin back office.
type Screens struct {
	AddPhoto    Screen
	ViewPhoto   Screen
	EditPhoto   Screen
	AddVideo    Screen
	PlayVideo   Screen
	EditVideo   Screen
	AddPress    Screen
	ReadPress   Screen
	EditPress   Screen
	ViewMessage Screen
}

// AdminRegistry returns the back office registry with one entry per sub-resource screen.
func AdminRegistry(s Screens) *Registry {
	return NewRegistry(
		Descriptor{Template: BasePath + "/addPhoto", Render: s.AddPhoto, ParentDashboard: PhotoDashboard, Category: CategoryPhoto},
		Descriptor{Template: BasePath + "/view/:id", Render: s.ViewPhoto, ParentDashboard: PhotoDashboard, Category: CategoryPhoto},
		Descriptor{Template: BasePath + "/edit/:id", Render: s.EditPhoto, ParentDashboard: PhotoDashboard, Category: CategoryPhoto},
		Descriptor{Template: BasePath + "/addVideo", Render: s.AddVideo, ParentDashboard: VideoDashboard, Category: CategoryVideo},
		Descriptor{Template: BasePath + "/play/:id", Render: s.PlayVideo, ParentDashboard: VideoDashboard, Category: CategoryVideo},
		Descriptor{Template: BasePath + "/editVideo/:id", Render: s.EditVideo, ParentDashboard: VideoDashboard, Category: CategoryVideo},
		Descriptor{Template: BasePath + "/addPress", Render: s.AddPress, ParentDashboard: PressDashboard, Category: CategoryPress},
		Descriptor{Template: BasePath + "/read/:id", Render: s.ReadPress, ParentDashboard: PressDashboard, Category: CategoryPress},
		Descriptor{Template: BasePath + "/editPress/:id", Render: s.EditPress, ParentDashboard: PressDashboard, Category: CategoryPress},
		Descriptor{Template: BasePath + "/message/:id", Render: s.ViewMessage, ParentDashboard: MessageDashboard, Category: CategoryMessage},
	)
}

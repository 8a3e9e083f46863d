package partials

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
)

// MenuItem is a sidebar entry.
type MenuItem struct {
	Key         string
	Label       string
	Href        string
	MatchPrefix bool
	Badge       int
}

// BuildMenu returns the sidebar entries: the overview plus one dashboard per category.
// unread decorates the message entry.
func BuildMenu(unread int) []MenuItem {
	items := []MenuItem{{Key: "overview", Label: "Overview", Href: routes.BasePath}}
	labels := map[routes.Category]string{
		routes.CategoryPhoto:   "Photos",
		routes.CategoryVideo:   "Videos",
		routes.CategoryPress:   "Press",
		routes.CategoryMessage: "Messages",
	}
	for _, category := range routes.Categories {
		item := MenuItem{Key: string(category), Label: labels[category], Href: category.Dashboard()}
		if category == routes.CategoryMessage {
			item.Badge = unread
		}
		items = append(items, item)
	}
	return items
}

// Sidebar renders the navigation menu, highlighting the active entry.
func Sidebar(items []MenuItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<nav class="space-y-1" aria-label="Back office" data-sidebar>`)
		for _, item := range items {
			active := helpers.NavActive(ctx, item.Href, item.MatchPrefix)
			m.Raw(`<a`).Href(item.Href).Attr("class", helpers.NavClass(active)).Attr("data-nav", item.Key)
			if active {
				m.Attr("aria-current", "page")
			}
			m.Raw(`>`).Text(item.Label)
			if item.Badge > 0 {
				m.Raw(`<span data-nav-badge`).Attr("class", helpers.BadgeClass("warning")).Raw(`>`).Text(strconv.Itoa(item.Badge)).Raw(`</span>`)
			}
			m.Raw(`</a>`)
		}
		m.Raw(`</nav>`)
		return m.Err()
	})
}

package partials

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
)

// BackTarget is where the back affordance of a screen points.
type BackTarget struct {
	Href  string
	Label string
}

// BackTargetFromContext derives the back affordance from the resolved route. ok is false
// when the request path matched no registered screen.
func BackTargetFromContext(ctx context.Context) (BackTarget, bool) {
	route, ok := middleware.ResolvedRouteFromContext(ctx)
	if !ok || route.ParentDashboard == "" {
		return BackTarget{}, false
	}
	return BackTarget{
		Href:  route.ParentDashboard,
		Label: route.Category.Label() + " dashboard",
	}, true
}

// BackLink renders "← Back to {Category} dashboard", or nothing when the current path
// has no parent dashboard.
func BackLink() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		target, ok := BackTargetFromContext(ctx)
		if !ok {
			return nil
		}
		m := helpers.NewMarkup(w)
		m.Raw(`<a data-back-link class="inline-flex items-center gap-1 text-sm font-medium text-slate-600 hover:text-slate-900"`).
			Href(target.Href).
			Raw(`><span aria-hidden="true">←</span> Back to `).
			Text(target.Label).
			Raw(`</a>`)
		return m.Err()
	})
}

// Breadcrumbs renders Admin › {Category} dashboard › current. Without a resolved route
// only the Admin crumb and current page are shown.
func Breadcrumbs(current string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<nav aria-label="Breadcrumb" data-breadcrumbs><ol class="flex items-center gap-2 text-sm text-slate-500">`)
		m.Raw(`<li><a class="hover:text-slate-900"`).Href(helpers.BasePath(ctx)).Raw(`>Admin</a></li>`)
		if target, ok := BackTargetFromContext(ctx); ok {
			m.Raw(`<li aria-hidden="true">›</li><li><a class="hover:text-slate-900"`).Href(target.Href).Raw(`>`).Text(target.Label).Raw(`</a></li>`)
		}
		if current != "" {
			m.Raw(`<li aria-hidden="true">›</li><li aria-current="page" class="font-medium text-slate-900">`).Text(current).Raw(`</li>`)
		}
		m.Raw(`</ol></nav>`)
		return m.Err()
	})
}

package partials

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/listing"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
)

// PaginationData drives the pager below dashboard tables.
type PaginationData struct {
	BasePath string
	Query    listing.Query
	Current  int
	Pages    int
	Total    int
}

// NewPagination builds pager data from a listing page.
func NewPagination[T any](basePath string, page listing.Page[T]) PaginationData {
	return PaginationData{
		BasePath: basePath,
		Query:    page.Query,
		Current:  page.Current,
		Pages:    page.Pages,
		Total:    page.Total,
	}
}

// Pagination renders previous/next links. Links target the dashboard table via htmx.
func Pagination(data PaginationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<div class="flex items-center justify-between text-sm text-slate-600" data-pagination>`)
		m.Raw(`<span>Page `).Text(strconv.Itoa(data.Current)).Raw(` of `).Text(strconv.Itoa(data.Pages)).
			Raw(` · `).Text(strconv.Itoa(data.Total)).Raw(` total</span><span class="flex gap-2">`)
		pageLink(m, data, data.Current-1, "Previous", "prev", data.Current > 1)
		pageLink(m, data, data.Current+1, "Next", "next", data.Current < data.Pages)
		m.Raw(`</span></div>`)
		return m.Err()
	})
}

func pageLink(m *helpers.Markup, data PaginationData, page int, label, rel string, enabled bool) {
	if !enabled {
		m.Raw(`<span class="text-slate-300" aria-disabled="true">`).Text(label).Raw(`</span>`)
		return
	}
	href := data.Query.WithPage(page).URL(data.BasePath)
	m.Raw(`<a`).Href(href).Attr("rel", rel).Attr("hx-get", href).
		Raw(` hx-target="#listing" hx-select="#listing" hx-swap="outerHTML" hx-push-url="true">`).Text(label).Raw(`</a>`)
}

// SearchBar renders the filter and sort controls of a dashboard.
func SearchBar(basePath string, q listing.Query) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<form method="get" class="flex flex-wrap gap-2" data-search`).Attr("action", basePath).Attr("hx-get", basePath).
			Raw(` hx-target="#listing" hx-select="#listing" hx-swap="outerHTML" hx-push-url="true" hx-trigger="submit, input changed delay:300ms from:input[name=q]">`)
		m.Raw(`<input type="search" name="q" placeholder="Search" class="rounded-md border px-3 py-2"`).Attr("value", q.Search).Raw(`>`)
		m.Raw(`<select name="sort" class="rounded-md border px-3 py-2">`)
		for _, s := range listing.Sorts {
			m.Raw(`<option`).Attr("value", string(s)).BoolAttr("selected", s == q.Sort).Raw(`>`).Text(s.Label()).Raw(`</option>`)
		}
		m.Raw(`</select>`)
		if q.PerPage != listing.DefaultPerPage {
			m.Raw(`<input type="hidden" name="per"`).Attr("value", strconv.Itoa(q.PerPage)).Raw(`>`)
		}
		m.Raw(`<button type="submit" class="rounded-md bg-slate-900 px-3 py-2 text-white">Apply</button></form>`)
		return m.Err()
	})
}

// EmptyState renders a muted placeholder row.
func EmptyState(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<p class="rounded-md border border-dashed p-6 text-center text-sm text-slate-500" data-empty>`).Text(message).Raw(`</p>`)
		return m.Err()
	})
}

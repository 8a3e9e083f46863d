package dashboard

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/templates/helpers"
	"finitefield.org/campaign-site/internal/admin/templates/partials"
)

// Overview renders the landing page of the back office.
func Overview(data OverviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Component(ctx, partials.Breadcrumbs("Overview"))
		m.Raw(`<h1 class="text-2xl font-semibold">Overview</h1>`)
		for _, msg := range data.Errors {
			m.Raw(`<p role="alert" class="text-sm text-rose-700" data-overview-error>`).Text(msg).Raw(`</p>`)
		}
		m.Raw(`<section class="grid grid-cols-4 gap-4" data-overview-cards>`)
		for _, card := range data.Cards {
			m.Raw(`<a class="rounded-lg border bg-white p-4 shadow-sm"`).Href(card.Href).Attr("data-card", string(card.Category)).Raw(`>`)
			m.Raw(`<span class="block text-sm text-slate-500">`).Text(card.Label).Raw(`</span>`)
			m.Raw(`<span class="block text-3xl font-semibold" data-count>`).Text(strconv.Itoa(card.Count)).Raw(`</span>`)
			if card.Note != "" {
				m.Raw(`<span class="text-xs text-slate-500">`).Text(card.Note).Raw(`</span>`)
			}
			m.Raw(`</a>`)
		}
		m.Raw(`</section><section class="space-y-2"><h2 class="text-lg font-semibold">Recent messages</h2>`)
		if len(data.RecentMessages) == 0 {
			m.Component(ctx, partials.EmptyState("No messages yet."))
		} else {
			writeRows(m, data.RecentMessages, "", false)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

// Index renders a category dashboard body: heading, controls and the listing.
func Index(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Component(ctx, partials.Breadcrumbs(data.Title))
		m.Raw(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">`).Text(data.Title).Raw(`</h1>`)
		if data.AddHref != "" {
			m.Raw(`<a class="rounded-md bg-slate-900 px-3 py-2 text-sm text-white" data-add`).Href(data.AddHref).Raw(`>`).Text(data.AddLabel).Raw(`</a>`)
		}
		m.Raw(`</div>`)
		m.Component(ctx, partials.SearchBar(data.BasePath, data.Query))
		m.Component(ctx, Table(data))
		return m.Err()
	})
}

// Table renders the swappable listing fragment.
func Table(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<section id="listing" class="space-y-3"`).Attr("data-category", string(data.Category)).Raw(`>`)
		if data.Error != "" {
			m.Raw(`<p role="alert" class="text-sm text-rose-700" data-listing-error>`).Text(data.Error).Raw(`</p>`)
		} else if len(data.Rows) == 0 {
			m.Component(ctx, partials.EmptyState(data.Empty))
		} else {
			writeRows(m, data.Rows, data.Query.Search, true)
		}
		m.Component(ctx, partials.Pagination(data.Pagination))
		m.Raw(`</section>`)
		return m.Err()
	})
}

func writeRows(m *helpers.Markup, rows []Row, term string, withEdit bool) {
	m.Raw(`<ul class="divide-y rounded-lg border bg-white" data-rows>`)
	for _, row := range rows {
		m.Raw(`<li class="flex items-center justify-between gap-4 p-4" data-row`).Attr("data-id", row.ID).Raw(`>`)
		m.Raw(`<div><a class="font-medium hover:underline" data-row-link`).Href(row.Href).Raw(`>`).Highlight(row.Title, term).Raw(`</a>`)
		if row.Subtitle != "" {
			m.Raw(`<p class="text-sm text-slate-500">`).Highlight(row.Subtitle, term).Raw(`</p>`)
		}
		m.Raw(`</div><div class="flex items-center gap-3 text-sm text-slate-500">`)
		if row.Badge != "" {
			m.Raw(`<span data-badge`).Attr("class", helpers.BadgeClass(row.BadgeTone)).Raw(`>`).Text(row.Badge).Raw(`</span>`)
		}
		m.Raw(`<span>`).Text(row.Meta).Raw(`</span>`)
		if withEdit && row.EditHref != "" {
			m.Raw(`<a class="text-slate-600 hover:text-slate-900" data-row-edit`).Href(row.EditHref).Raw(`>Edit</a>`)
		}
		m.Raw(`</div></li>`)
	}
	m.Raw(`</ul>`)
}

// Package views renders the public site's pages.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/platform/markup"
	"finitefield.org/campaign-site/internal/site/nav"
	"finitefield.org/campaign-site/internal/site/seo"
	"finitefield.org/campaign-site/internal/site/sitecontent"
)

// PageData is the chrome shared by every public page.
type PageData struct {
	Meta        seo.Meta
	Site        *sitecontent.Site
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Body        templ.Component
}

// Page renders a full HTML document around data.Body.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		site := data.Site
		if site == nil {
			site = &sitecontent.Site{}
		}

		m := markup.New(w)
		m.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw(`<title>`).Text(data.Meta.Title).Raw(`</title>`)
		if data.Meta.Description != "" {
			m.Raw(`<meta name="description"`).Attr("content", data.Meta.Description).Raw(`>`)
		}
		if data.Meta.Canonical != "" {
			m.Raw(`<link rel="canonical"`).Href(data.Meta.Canonical).Raw(`>`)
		}
		writeOpenGraph(m, data.Meta.OG)
		for _, payload := range data.Meta.JSONLD {
			if payload == "" {
				continue
			}
			m.Raw(`<script type="application/ld+json">`).Raw(payload).Raw(`</script>`)
		}
		m.Raw(`<link rel="stylesheet" href="/public/static/site.css"></head><body>`)

		m.Raw(`<header class="site-header"><a class="site-name" href="/">`).Text(site.Name).Raw(`</a>`)
		m.Raw(`<nav aria-label="Primary" data-site-nav><ul>`)
		for _, item := range data.Nav {
			m.Raw(`<li><a`).Href(item.Href)
			if item.Active {
				m.Raw(` aria-current="page"`)
			}
			m.Raw(`>`).Text(item.Label).Raw(`</a></li>`)
		}
		m.Raw(`</ul></nav></header>`)

		if len(data.Breadcrumbs) > 1 {
			m.Component(ctx, Breadcrumbs(data.Breadcrumbs))
		}
		m.Raw(`<main id="main">`)
		m.Component(ctx, data.Body)
		m.Raw(`</main>`)

		m.Raw(`<footer class="site-footer">`)
		if len(site.Social) > 0 {
			m.Raw(`<ul class="social" data-social>`)
			for _, link := range site.Social {
				m.Raw(`<li><a rel="me noopener" target="_blank"`).Href(link.Href).Raw(`>`).Text(link.Label).Raw(`</a></li>`)
			}
			m.Raw(`</ul>`)
		}
		m.Raw(`<p>`).Text(site.Tagline).Raw(`</p></footer></body></html>`)
		return m.Err()
	})
}

// Breadcrumbs renders the trail; the active crumb is not a link.
func Breadcrumbs(crumbs []nav.Crumb) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<nav aria-label="Breadcrumb" class="breadcrumbs" data-breadcrumbs><ol>`)
		for _, c := range crumbs {
			if c.Active {
				m.Raw(`<li aria-current="page">`).Text(c.Label).Raw(`</li>`)
				continue
			}
			m.Raw(`<li><a`).Href(c.Href).Raw(`>`).Text(c.Label).Raw(`</a></li>`)
		}
		m.Raw(`</ol></nav>`)
		return m.Err()
	})
}

func writeOpenGraph(m *markup.Markup, og seo.OpenGraph) {
	props := []struct{ name, value string }{
		{"og:title", og.Title},
		{"og:description", og.Description},
		{"og:type", og.Type},
		{"og:url", og.URL},
		{"og:image", og.Image},
		{"og:site_name", og.SiteName},
	}
	for _, p := range props {
		if p.value == "" {
			continue
		}
		m.Raw(`<meta`).Attr("property", p.name).Attr("content", p.value).Raw(`>`)
	}
}

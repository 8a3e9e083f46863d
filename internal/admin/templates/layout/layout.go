// Package layout renders the back-office page chrome.
package layout

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
	"finitefield.org/campaign-site/internal/admin/templates/partials"
)

// PageData is the chrome around a back-office page.
type PageData struct {
	Title  string
	Unread int
	Body   templ.Component
}

// Page renders a full HTML document. The user menu, environment badge, CSRF token and
// queued flash are read from the request context.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		csrf := middleware.CSRFTokenFromContext(ctx)
		headers, err := json.Marshal(map[string]string{"X-CSRF-Token": csrf})
		if err != nil {
			return err
		}

		m := helpers.NewMarkup(w)
		m.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw(`<title>`).Text(Title(data.Title)).Raw(`</title>`)
		m.Raw(`<meta name="csrf-token"`).Attr("content", csrf).Raw(`>`)
		m.Raw(`<link rel="stylesheet" href="/public/static/admin.css">`)
		m.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		m.Raw(`</head><body class="min-h-screen bg-slate-50"`).Attr("hx-headers", string(headers)).Raw(`>`)
		m.Raw(`<div class="flex min-h-screen"><aside class="w-60 border-r bg-white p-4">`)
		m.Raw(`<a class="mb-6 block text-lg font-semibold"`).Href(routes.BasePath).Raw(`>Campaign Admin</a>`)
		m.Component(ctx, partials.Sidebar(partials.BuildMenu(data.Unread)))
		m.Raw(`</aside><div class="flex-1">`)
		m.Component(ctx, Topbar())
		m.Raw(`<main id="main" class="space-y-6 p-6">`)
		if sess, ok := middleware.SessionFromContext(ctx); ok {
			if flash, ok := sess.PopFlash(); ok {
				m.Component(ctx, partials.Flash(flash.Kind, flash.Message))
			}
		}
		m.Component(ctx, data.Body)
		m.Raw(`</main></div></div></body></html>`)
		return m.Err()
	})
}

// Title formats the document title.
func Title(page string) string {
	if page = strings.TrimSpace(page); page == "" {
		return "Campaign Admin"
	}
	return page + " · Campaign Admin"
}

// Topbar renders the environment badge and the user menu.
func Topbar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<header class="flex items-center justify-between border-b bg-white px-6 py-3">`)
		env := middleware.EnvironmentFromContext(ctx)
		m.Raw(`<span data-environment-badge`).Attr("title", env).Attr("class", helpers.BadgeClass(environmentTone(env))).
			Raw(`><span aria-hidden="true">`).Text(EnvironmentShort(env)).Raw(`</span></span>`)
		if user, ok := middleware.UserFromContext(ctx); ok {
			m.Raw(`<div class="flex items-center gap-3 text-sm" data-user-menu><span>`).Text(user.DisplayName()).Raw(`</span>`)
			m.Raw(`<form method="post" data-user-menu-logout`).Attr("action", routes.BasePath+"/logout").Raw(`>`)
			m.Raw(`<input type="hidden"`).Attr("name", middleware.CSRFFormField).Attr("value", middleware.CSRFTokenFromContext(ctx)).Raw(`>`)
			m.Raw(`<button type="submit" class="text-slate-600 hover:text-slate-900">Sign out</button></form></div>`)
		}
		m.Raw(`</header>`)
		return m.Err()
	})
}

// EnvironmentShort abbreviates the environment label for the badge.
func EnvironmentShort(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return "PROD"
	case "staging", "stg":
		return "STG"
	case "development", "dev", "":
		return "DEV"
	default:
		return strings.ToUpper(env)
	}
}

func environmentTone(env string) string {
	switch EnvironmentShort(env) {
	case "PROD":
		return "danger"
	case "STG":
		return "warning"
	default:
		return "info"
	}
}

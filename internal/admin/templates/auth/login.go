// Package auth renders the back-office sign-in page.
package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
)

// LoginPageData encapsulates rendering state for the sign-in screen.
type LoginPageData struct {
	Message   string
	Error     string
	Next      string
	LoginPath string
	CSRFToken string
	ProjectID string
}

// LoginPage renders the sign-in form. The identity provider's client script fills the
// id_token field; operators may paste a token directly in development.
func LoginPage(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		m.Raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.Raw(`<title>Sign in · Campaign Admin</title><link rel="stylesheet" href="/public/static/admin.css"></head>`)
		m.Raw(`<body class="flex min-h-screen items-center justify-center bg-slate-50"><main class="w-full max-w-sm space-y-4 rounded-lg bg-white p-8 shadow">`)
		m.Raw(`<h1 class="text-xl font-semibold">Campaign Admin</h1>`)
		if data.Message != "" {
			m.Raw(`<p class="text-sm text-slate-600" data-login-message>`).Text(data.Message).Raw(`</p>`)
		}
		if data.Error != "" {
			m.Raw(`<p role="alert" class="text-sm text-rose-700" data-login-error>`).Text(data.Error).Raw(`</p>`)
		}
		m.Raw(`<form method="post" class="space-y-3" data-login-form`).Attr("action", data.LoginPath)
		if data.ProjectID != "" {
			m.Attr("data-firebase-project", data.ProjectID)
		}
		m.Raw(`>`)
		m.Raw(`<input type="hidden"`).Attr("name", middleware.CSRFFormField).Attr("value", data.CSRFToken).Raw(`>`)
		if data.Next != "" {
			m.Raw(`<input type="hidden" name="next"`).Attr("value", data.Next).Raw(`>`)
		}
		m.Raw(`<label class="block text-sm font-medium" for="id_token">Identity token</label>`)
		m.Raw(`<textarea id="id_token" name="id_token" rows="3" class="w-full rounded-md border px-3 py-2" autocomplete="off" required></textarea>`)
		m.Raw(`<button type="submit" class="w-full rounded-md bg-slate-900 px-3 py-2 text-white">Sign in</button></form>`)
		m.Raw(`</main><script src="/public/static/login.js" defer></script></body></html>`)
		return m.Err()
	})
}

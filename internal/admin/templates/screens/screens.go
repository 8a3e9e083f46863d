// Package screens renders the sub-resource screens reached from the dashboards.
package screens

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/admin/templates/helpers"
	"finitefield.org/campaign-site/internal/admin/templates/partials"
	"finitefield.org/campaign-site/internal/content"
)

func header(ctx context.Context, m *helpers.Markup, title string) {
	m.Component(ctx, partials.Breadcrumbs(title))
	m.Raw(`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold" data-screen-title>`).Text(title).Raw(`</h1>`)
	m.Component(ctx, partials.BackLink())
	m.Raw(`</div>`)
}

// PhotoView shows a single photo with its caption.
func PhotoView(photo content.Photo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		header(ctx, m, photo.Title)
		m.Raw(`<figure class="space-y-2" data-photo`).Attr("data-id", photo.ID).Raw(`><img class="max-h-[70vh] rounded-lg"`).
			Src(photo.ImageURL).Attr("alt", photo.Title).Raw(`>`)
		if photo.Caption != "" {
			m.Raw(`<figcaption class="text-sm text-slate-600">`).Text(photo.Caption).Raw(`</figcaption>`)
		}
		m.Raw(`</figure><dl class="grid grid-cols-2 gap-2 text-sm">`)
		detail(m, "Taken", helpers.Date(photo.TakenAt, ""))
		detail(m, "Uploaded", helpers.Date(photo.CreatedAt, ""))
		m.Raw(`</dl><a class="text-sm font-medium" data-edit`).Href(routes.EditPhotoPath(photo.ID)).Raw(`>Edit details</a>`)
		return m.Err()
	})
}

// VideoPlayer plays a video inline.
func VideoPlayer(video content.Video) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		header(ctx, m, video.Title)
		m.Raw(`<video controls preload="metadata" class="w-full max-w-3xl rounded-lg" data-video`).Attr("data-id", video.ID).Src(video.VideoURL)
		if video.PosterURL != "" {
			m.Attr("poster", string(templ.URL(video.PosterURL)))
		}
		m.Raw(`></video>`)
		if video.Description != "" {
			m.Raw(`<p class="text-slate-700">`).Text(video.Description).Raw(`</p>`)
		}
		m.Raw(`<dl class="grid grid-cols-2 gap-2 text-sm">`)
		detail(m, "Length", helpers.Duration(video.Duration()))
		detail(m, "Published", helpers.Date(video.PublishedAt, ""))
		m.Raw(`</dl><a class="text-sm font-medium" data-edit`).Href(routes.EditVideoPath(video.ID)).Raw(`>Edit details</a>`)
		return m.Err()
	})
}

// PressReader shows a press article. body must already be sanitised HTML.
func PressReader(article content.PressArticle, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		header(ctx, m, article.Title)
		m.Raw(`<p class="text-sm text-slate-500">`).Text(article.Outlet).Raw(` · `).Text(helpers.Date(article.PublishedAt, "")).Raw(`</p>`)
		if article.URL != "" {
			m.Raw(`<a class="text-sm" rel="noopener" target="_blank" data-source`).Href(article.URL).Raw(`>Original article</a>`)
		}
		m.Raw(`<article class="prose max-w-none" data-press-body>`)
		m.Component(ctx, templ.Raw(body))
		m.Raw(`</article><a class="text-sm font-medium" data-edit`).Href(routes.EditPressPath(article.ID)).Raw(`>Edit article</a>`)
		return m.Err()
	})
}

// MessageDetail shows an inbox message with its read and delete actions.
func MessageDetail(msg content.Message, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		title := msg.Subject
		if title == "" {
			title = "Message from " + msg.Name
		}
		header(ctx, m, title)
		m.Raw(`<dl class="grid grid-cols-2 gap-2 text-sm" data-message`).Attr("data-id", msg.ID).BoolAttr("data-unread", !msg.Read).Raw(`>`)
		detail(m, "From", msg.Name)
		m.Raw(`<dt>Email</dt><dd><a`).Href("mailto:"+msg.Email).Raw(`>`).Text(msg.Email).Raw(`</a></dd>`)
		detail(m, "Received", helpers.Relative(msg.ReceivedAt, now))
		m.Raw(`</dl><p class="whitespace-pre-line rounded-lg border bg-white p-4" data-message-body>`).Text(msg.Body).Raw(`</p>`)
		m.Raw(`<div class="flex gap-3">`)
		if !msg.Read {
			action(ctx, m, routes.MessagePath(msg.ID)+"/read", "Mark as read", "data-mark-read")
		}
		action(ctx, m, routes.MessagePath(msg.ID)+"/delete", "Delete", "data-delete")
		m.Raw(`</div>`)
		return m.Err()
	})
}

// ShellData describes an add or edit screen rendered as a summary.
type ShellData struct {
	Title   string
	Summary string
	Fields  []Field
}

// Field is one labelled value of a summary shell.
type Field struct {
	Label string
	Value string
}

// Shell renders the summary of an add or edit screen with its back link. Editing happens
// in the backend's own tooling.
func Shell(data ShellData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := helpers.NewMarkup(w)
		header(ctx, m, data.Title)
		m.Raw(`<section class="rounded-lg border bg-white p-4 space-y-3" data-shell>`)
		if data.Summary != "" {
			m.Raw(`<p class="text-slate-700">`).Text(data.Summary).Raw(`</p>`)
		}
		if len(data.Fields) > 0 {
			m.Raw(`<dl class="grid grid-cols-2 gap-2 text-sm">`)
			for _, f := range data.Fields {
				detail(m, f.Label, f.Value)
			}
			m.Raw(`</dl>`)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

// PhotoShell summarises a photo on its edit screen.
func PhotoShell(photo content.Photo) ShellData {
	return ShellData{
		Title:   "Edit " + photo.Title,
		Summary: photo.Caption,
		Fields: []Field{
			{Label: "ID", Value: photo.ID},
			{Label: "Image", Value: photo.ImageURL},
			{Label: "Uploaded", Value: helpers.Date(photo.CreatedAt, "")},
		},
	}
}

// VideoShell summarises a video on its edit screen.
func VideoShell(video content.Video) ShellData {
	return ShellData{
		Title:   "Edit " + video.Title,
		Summary: video.Description,
		Fields: []Field{
			{Label: "ID", Value: video.ID},
			{Label: "Source", Value: video.VideoURL},
			{Label: "Length", Value: helpers.Duration(video.Duration())},
		},
	}
}

// PressShell summarises a press article on its edit screen.
func PressShell(article content.PressArticle) ShellData {
	return ShellData{
		Title:   "Edit " + article.Title,
		Summary: article.Summary,
		Fields: []Field{
			{Label: "ID", Value: article.ID},
			{Label: "Outlet", Value: article.Outlet},
			{Label: "Words", Value: strconv.Itoa(len(strings.Fields(article.Body)))},
		},
	}
}

// AddShell summarises an add screen for the category.
func AddShell(category routes.Category, existing int) ShellData {
	label := category.Label()
	return ShellData{
		Title:   "Add " + strings.ToLower(label),
		Summary: "New items are created in the content backend and appear on the " + strings.ToLower(label) + " dashboard once published.",
		Fields: []Field{
			{Label: "Published", Value: strconv.Itoa(existing)},
		},
	}
}

func detail(m *helpers.Markup, label, value string) {
	m.Raw(`<dt class="text-slate-500">`).Text(label).Raw(`</dt><dd>`).Text(value).Raw(`</dd>`)
}

func action(ctx context.Context, m *helpers.Markup, target, label, marker string) {
	m.Raw(`<form method="post"`).Attr("action", target).Raw(` `).Raw(marker).Raw(`>`)
	m.Raw(`<input type="hidden"`).Attr("name", middleware.CSRFFormField).Attr("value", middleware.CSRFTokenFromContext(ctx)).Raw(`>`)
	m.Raw(`<button type="submit" class="rounded-md border px-3 py-2 text-sm">`).Text(label).Raw(`</button></form>`)
}

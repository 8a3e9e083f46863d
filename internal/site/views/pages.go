package views

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/markup"
	"finitefield.org/campaign-site/internal/site/sitecontent"
)

// HomeData feeds the landing page. Press and Photos are teasers and may be empty
// when the backend is unavailable.
type HomeData struct {
	Site   *sitecontent.Site
	Press  []content.PressArticle
	Photos []content.Photo
}

// GalleryData feeds the gallery page.
type GalleryData struct {
	Photos []content.Photo
	Videos []content.Video
}

// ContactData feeds the contact page.
type ContactData struct {
	Site      *sitecontent.Site
	Form      content.ContactSubmission
	Errors    map[string]string
	Problem   string
	Sent      bool
	CSRFToken string
	CSRFField string
}

// Home renders the hero followed by the latest press and a gallery teaser.
func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		site := data.Site
		m := markup.New(w)
		m.Raw(`<section class="hero" data-hero>`)
		if site.Hero.Image != "" {
			m.Raw(`<img alt=""`).Src(site.Hero.Image).Raw(`>`)
		}
		m.Raw(`<h1>`).Text(site.Hero.Headline).Raw(`</h1>`)
		if site.Hero.Subhead != "" {
			m.Raw(`<p class="lead">`).Text(site.Hero.Subhead).Raw(`</p>`)
		}
		if site.Hero.CTA.Href != "" {
			m.Raw(`<a class="button" data-cta`).Href(site.Hero.CTA.Href).Raw(`>`).Text(site.Hero.CTA.Label).Raw(`</a>`)
		}
		m.Raw(`</section>`)

		m.Raw(`<section class="about" data-about><h2>About `).Text(site.Person.Name).Raw(`</h2>`)
		if site.Person.Role != "" {
			m.Raw(`<p class="role">`).Text(site.Person.Role).Raw(`</p>`)
		}
		m.Raw(`<p>`).Text(site.Person.Bio).Raw(`</p></section>`)

		if len(data.Press) > 0 {
			m.Raw(`<section data-latest-press><h2>Latest press</h2>`)
			m.Component(ctx, pressList(data.Press))
			m.Raw(`<a href="/press">All press</a></section>`)
		}
		if len(data.Photos) > 0 {
			m.Raw(`<section data-gallery-teaser><h2>On the trail</h2>`)
			m.Component(ctx, photoGrid(data.Photos))
			m.Raw(`<a href="/gallery">Open the gallery</a></section>`)
		}
		return m.Err()
	})
}

// Timeline renders the biography milestones, oldest first.
func Timeline(site *sitecontent.Site) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<h1>Timeline</h1><ol class="timeline" data-timeline>`)
		for _, item := range site.Timeline {
			m.Raw(`<li data-milestone><time`).Attr("datetime", item.Date.Format("2006-01-02")).Raw(`>`).
				Text(item.Date.Format("January 2006")).Raw(`</time><h2>`).Text(item.Title).Raw(`</h2>`)
			if item.Body != "" {
				m.Raw(`<p>`).Text(item.Body).Raw(`</p>`)
			}
			m.Raw(`</li>`)
		}
		m.Raw(`</ol>`)
		return m.Err()
	})
}

// Gallery renders every photo and video.
func Gallery(data GalleryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<h1>Gallery</h1>`)
		if len(data.Photos) == 0 && len(data.Videos) == 0 {
			m.Raw(`<p data-empty>Nothing here yet. Check back soon.</p>`)
			return m.Err()
		}
		if len(data.Photos) > 0 {
			m.Raw(`<section data-photos><h2>Photos</h2>`)
			m.Component(ctx, photoGrid(data.Photos))
			m.Raw(`</section>`)
		}
		if len(data.Videos) > 0 {
			m.Raw(`<section data-videos><h2>Videos</h2>`)
			for _, v := range data.Videos {
				m.Raw(`<figure data-video><video controls preload="metadata"`).Src(v.VideoURL)
				if v.PosterURL != "" {
					m.Attr("poster", string(templ.URL(v.PosterURL)))
				}
				m.Raw(`></video><figcaption>`).Text(v.Title)
				if d := v.Duration(); d > 0 {
					m.Raw(` <span class="duration">`).Text(formatDuration(d)).Raw(`</span>`)
				}
				m.Raw(`</figcaption></figure>`)
			}
			m.Raw(`</section>`)
		}
		return m.Err()
	})
}

// PressIndex lists press articles.
func PressIndex(articles []content.PressArticle) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<h1>Press</h1>`)
		if len(articles) == 0 {
			m.Raw(`<p data-empty>No press yet.</p>`)
			return m.Err()
		}
		m.Component(ctx, pressList(articles))
		return m.Err()
	})
}

// PressArticle renders a single article. body is sanitized HTML.
func PressArticle(article content.PressArticle, body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<article data-article><h1>`).Text(article.Title).Raw(`</h1><p class="byline">`)
		if article.Outlet != "" {
			m.Text(article.Outlet).Raw(` · `)
		}
		m.Raw(`<time`).Attr("datetime", article.PublishedAt.Format(time.RFC3339)).Raw(`>`).Text(formatDate(article.PublishedAt)).Raw(`</time></p>`)
		if body != "" {
			m.Raw(`<div class="prose" data-article-body>`).Raw(body).Raw(`</div>`)
		} else if article.Summary != "" {
			m.Raw(`<p>`).Text(article.Summary).Raw(`</p>`)
		}
		if article.URL != "" {
			m.Raw(`<p><a rel="noopener" target="_blank" data-source`).Href(article.URL).Raw(`>Read at the source</a></p>`)
		}
		m.Raw(`<p><a href="/press">Back to press</a></p></article>`)
		return m.Err()
	})
}

// Contact renders the contact form, the thank-you note after a successful post, or the
// form again with field errors.
func Contact(data ContactData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<h1>Contact</h1>`)
		if data.Site != nil && data.Site.Contact.Intro != "" {
			m.Raw(`<p>`).Text(data.Site.Contact.Intro).Raw(`</p>`)
		}
		if data.Sent {
			m.Raw(`<p role="status" data-sent>Thanks for writing. We will get back to you soon.</p>`)
		}
		if data.Problem != "" {
			m.Raw(`<p role="alert" data-problem>`).Text(data.Problem).Raw(`</p>`)
		}

		m.Raw(`<form method="post" action="/contact" novalidate data-contact-form>`)
		m.Raw(`<input type="hidden"`).Attr("name", data.CSRFField).Attr("value", data.CSRFToken).Raw(`>`)
		field(m, data, "name", "Name", "text", data.Form.Name)
		field(m, data, "email", "Email", "email", data.Form.Email)
		field(m, data, "subject", "Subject (optional)", "text", data.Form.Subject)

		m.Raw(`<label for="contact-body">Message</label>`)
		m.Raw(`<textarea id="contact-body" name="body" rows="6"`).Attr("maxlength", strconv.Itoa(content.MaxMessageLength))
		if msg, ok := data.Errors["body"]; ok {
			m.Raw(` aria-invalid="true" aria-describedby="contact-body-error">`).Text(data.Form.Body).Raw(`</textarea>`)
			m.Raw(`<p id="contact-body-error" class="field-error" data-error="body">`).Text(msg).Raw(`</p>`)
		} else {
			m.Raw(`>`).Text(data.Form.Body).Raw(`</textarea>`)
		}
		m.Raw(`<button type="submit">Send</button></form>`)

		if data.Site != nil && data.Site.Contact.Email != "" {
			m.Raw(`<p>Or email <a`).Href("mailto:" + data.Site.Contact.Email).Raw(`>`).Text(data.Site.Contact.Email).Raw(`</a>.</p>`)
		}
		return m.Err()
	})
}

// Problem renders an error page body.
func Problem(title, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<section data-problem-page><h1>`).Text(title).Raw(`</h1><p>`).Text(message).Raw(`</p><p><a href="/">Return home</a></p></section>`)
		return m.Err()
	})
}

func field(m *markup.Markup, data ContactData, name, label, kind, value string) {
	id := "contact-" + name
	m.Raw(`<label`).Attr("for", id).Raw(`>`).Text(label).Raw(`</label>`)
	m.Raw(`<input`).Attr("id", id).Attr("name", name).Attr("type", kind).Attr("value", value)
	msg, invalid := data.Errors[name]
	if invalid {
		m.Raw(` aria-invalid="true"`).Attr("aria-describedby", id+"-error")
	}
	m.Raw(`>`)
	if invalid {
		m.Raw(`<p class="field-error"`).Attr("id", id+"-error").Attr("data-error", name).Raw(`>`).Text(msg).Raw(`</p>`)
	}
}

func pressList(articles []content.PressArticle) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<ul class="press-list">`)
		for _, a := range articles {
			m.Raw(`<li data-press-item><a`).Href("/press/" + a.ID).Raw(`>`).Text(a.Title).Raw(`</a><span class="meta">`)
			if a.Outlet != "" {
				m.Text(a.Outlet).Raw(` · `)
			}
			m.Text(formatDate(a.PublishedAt)).Raw(`</span>`)
			if a.Summary != "" {
				m.Raw(`<p>`).Text(a.Summary).Raw(`</p>`)
			}
			m.Raw(`</li>`)
		}
		m.Raw(`</ul>`)
		return m.Err()
	})
}

func photoGrid(photos []content.Photo) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<ul class="photo-grid">`)
		for _, p := range photos {
			m.Raw(`<li data-photo><figure><img loading="lazy"`).Src(p.ImageURL).Attr("alt", p.Title).Raw(`><figcaption>`).Text(p.Title).Raw(`</figcaption></figure></li>`)
		}
		m.Raw(`</ul>`)
		return m.Err()
	})
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("January 2, 2006")
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

package httpserver

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/markdown"
	"finitefield.org/campaign-site/internal/platform/csrf"
	"finitefield.org/campaign-site/internal/platform/observability"
	"finitefield.org/campaign-site/internal/site/nav"
	"finitefield.org/campaign-site/internal/site/seo"
	"finitefield.org/campaign-site/internal/site/sitecontent"
	"finitefield.org/campaign-site/internal/site/views"
)

const (
	homePressLimit  = 3
	homePhotosLimit = 4
)

type handlers struct {
	site     *sitecontent.Store
	content  content.Service
	markdown *markdown.Renderer
	baseURL  string
}

// page describes one rendered response.
type page struct {
	status      int
	title       string
	description string
	leaf        string
	jsonld      []string
	body        templ.Component
}

func (h *handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	site := h.site.Current()

	var (
		press  []content.PressArticle
		photos []content.Photo
		g      errgroup.Group
	)
	g.Go(func() error {
		items, err := h.content.ListPress(ctx, "")
		if err != nil {
			logger.Warn("home: press unavailable", zap.Error(err))
			return nil
		}
		press = newestPress(items, homePressLimit)
		return nil
	})
	g.Go(func() error {
		items, err := h.content.ListPhotos(ctx, "")
		if err != nil {
			logger.Warn("home: photos unavailable", zap.Error(err))
			return nil
		}
		if len(items) > homePhotosLimit {
			items = items[:homePhotosLimit]
		}
		photos = items
		return nil
	})
	_ = g.Wait()

	sameAs := make([]string, 0, len(site.Social))
	for _, link := range site.Social {
		sameAs = append(sameAs, link.Href)
	}
	h.render(w, r, page{
		title:       site.Name,
		description: site.Tagline,
		jsonld: []string{seo.JSON(seo.Person(
			site.Person.Name,
			site.Person.Role,
			seo.Absolute(h.baseURL, "/"),
			seo.Absolute(h.baseURL, site.Person.Portrait),
			sameAs,
		))},
		body: views.Home(views.HomeData{Site: site, Press: press, Photos: photos}),
	})
}

func (h *handlers) Timeline(w http.ResponseWriter, r *http.Request) {
	site := h.site.Current()
	h.render(w, r, page{
		title:       "Timeline",
		description: "Milestones in " + site.Person.Name + "'s public life.",
		body:        views.Timeline(site),
	})
}

func (h *handlers) Gallery(w http.ResponseWriter, r *http.Request) {
	g, ctx := errgroup.WithContext(r.Context())
	var data views.GalleryData
	g.Go(func() error {
		photos, err := h.content.ListPhotos(ctx, "")
		data.Photos = photos
		return err
	})
	g.Go(func() error {
		videos, err := h.content.ListVideos(ctx, "")
		data.Videos = videos
		return err
	})
	if err := g.Wait(); err != nil {
		h.backendProblem(w, r, "gallery", err)
		return
	}
	h.render(w, r, page{
		title:       "Gallery",
		description: "Photos and videos from the campaign trail.",
		body:        views.Gallery(data),
	})
}

func (h *handlers) Press(w http.ResponseWriter, r *http.Request) {
	articles, err := h.content.ListPress(r.Context(), "")
	if err != nil {
		h.backendProblem(w, r, "press", err)
		return
	}
	h.render(w, r, page{
		title:       "Press",
		description: "Coverage and statements.",
		body:        views.PressIndex(newestPress(articles, 0)),
	})
}

func (h *handlers) PressArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	article, err := h.content.GetPress(ctx, "", id)
	switch {
	case errors.Is(err, content.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.backendProblem(w, r, "press article", err)
		return
	}

	body, err := h.markdown.Render(article.Body)
	if err != nil {
		observability.FromContext(ctx).Warn("press: markdown render failed", zap.String("id", id), zap.Error(err))
		body = ""
	}

	published := ""
	if !article.PublishedAt.IsZero() {
		published = article.PublishedAt.Format("2006-01-02")
	}
	h.render(w, r, page{
		title:       article.Title,
		description: article.Summary,
		leaf:        article.Title,
		jsonld:      []string{seo.JSON(seo.Article(article.Title, seo.Absolute(h.baseURL, r.URL.Path), article.Outlet, published))},
		body:        views.PressArticle(*article, body),
	})
}

func (h *handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, views.ContactData{Sent: r.URL.Query().Get("sent") == "1"})
}

// SubmitContact forwards the form to the backend and redirects on success so a refresh
// does not resubmit.
func (h *handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	submission := content.ContactSubmission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Body:    r.PostFormValue("body"),
	}.Normalize()

	if err := submission.Validate(); err != nil {
		h.renderContact(w, r, http.StatusUnprocessableEntity, views.ContactData{Form: submission, Errors: fieldErrors(err)})
		return
	}

	if _, err := h.content.SubmitContact(ctx, submission); err != nil {
		if fields := fieldErrors(err); fields != nil {
			h.renderContact(w, r, http.StatusUnprocessableEntity, views.ContactData{Form: submission, Errors: fields})
			return
		}
		observability.FromContext(ctx).Error("contact: submit failed", zap.Error(err))
		h.renderContact(w, r, http.StatusBadGateway, views.ContactData{
			Form:    submission,
			Problem: "We could not send your message right now. Please try again in a few minutes.",
		})
		return
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

// NotFound renders the 404 page inside the site chrome.
func (h *handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, page{
		status: http.StatusNotFound,
		title:  "Page not found",
		body:   views.Problem("Page not found", "The page you were looking for does not exist."),
	})
}

func (h *handlers) renderContact(w http.ResponseWriter, r *http.Request, status int, data views.ContactData) {
	data.Site = h.site.Current()
	data.CSRFToken = csrf.TokenFromContext(r.Context())
	data.CSRFField = csrf.FormField
	h.render(w, r, page{
		status:      status,
		title:       "Contact",
		description: "Write to the campaign.",
		body:        views.Contact(data),
	})
}

func (h *handlers) backendProblem(w http.ResponseWriter, r *http.Request, what string, err error) {
	observability.FromContext(r.Context()).Error("backend unavailable", zap.String("page", what), zap.Error(err))
	h.render(w, r, page{
		status: http.StatusBadGateway,
		title:  "Temporarily unavailable",
		body:   views.Problem("Temporarily unavailable", "This page could not be loaded. Please try again shortly."),
	})
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, p page) {
	site := h.site.Current()
	path := r.URL.Path
	crumbs := nav.Breadcrumbs(path, p.leaf)

	meta := seo.NewMeta(site.Name, p.title, p.description, h.baseURL, path)
	meta.OG.Image = seo.Absolute(h.baseURL, site.Hero.Image)
	meta.JSONLD = p.jsonld
	if len(crumbs) > 1 && h.baseURL != "" {
		items := make([]seo.BreadcrumbItem, 0, len(crumbs))
		for _, c := range crumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: seo.Absolute(h.baseURL, c.Href)})
		}
		meta.JSONLD = append(meta.JSONLD, seo.JSON(seo.BreadcrumbList(items)))
	}

	status := p.status
	if status == 0 {
		status = http.StatusOK
	}
	component := views.Page(views.PageData{
		Meta:        meta,
		Site:        site,
		Nav:         nav.Build(path),
		Breadcrumbs: crumbs,
		Body:        p.body,
	})
	templ.Handler(component, templ.WithStatus(status), templ.WithErrorHandler(renderError)).ServeHTTP(w, r)
}

func renderError(r *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		observability.FromContext(r.Context()).Error("render failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	})
}

func fieldErrors(err error) map[string]string {
	var verr *content.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		return verr.Fields
	}
	return nil
}

// newestPress orders articles newest first and keeps at most limit (0 keeps all).
func newestPress(items []content.PressArticle, limit int) []content.PressArticle {
	out := append([]content.PressArticle(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

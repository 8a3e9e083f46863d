package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/templates/dashboard"
	"finitefield.org/campaign-site/internal/admin/templates/layout"
	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/markdown"
	"finitefield.org/campaign-site/internal/platform/httpx"
	"finitefield.org/campaign-site/internal/platform/observability"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Content  content.Service
	Markdown *markdown.Renderer
	Now      func() time.Time
}

// Handlers exposes HTTP handlers for admin UI pages and fragments.
type Handlers struct {
	content  content.Service
	markdown *markdown.Renderer
	now      func() time.Time
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	service := deps.Content
	if service == nil {
		service = content.NewStaticService()
	}
	md := deps.Markdown
	if md == nil {
		md = markdown.New()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		content:  service,
		markdown: md,
		now:      now,
	}
}

// Overview renders the back-office landing page. Collections that fail to load are
// reported on the page instead of failing the whole request.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := custommw.TokenFromContext(ctx)
	logger := observability.FromContext(ctx)

	var (
		counts dashboard.Counts
		errs   [4]error
		g      errgroup.Group
	)
	g.Go(func() error {
		photos, err := h.content.ListPhotos(ctx, token)
		counts.Photos, errs[0] = len(photos), err
		return nil
	})
	g.Go(func() error {
		videos, err := h.content.ListVideos(ctx, token)
		counts.Videos, errs[1] = len(videos), err
		return nil
	})
	g.Go(func() error {
		press, err := h.content.ListPress(ctx, token)
		counts.Press, errs[2] = len(press), err
		return nil
	})
	g.Go(func() error {
		counts.Messages, errs[3] = h.content.ListMessages(ctx, token)
		return nil
	})
	_ = g.Wait()

	var problems []string
	for i, label := range []string{"photos", "videos", "press articles", "messages"} {
		if errs[i] != nil {
			logger.Warn("overview: load failed", zap.String("collection", label), zap.Error(errs[i]))
			problems = append(problems, "Could not load "+label+".")
		}
	}

	data := dashboard.NewOverview(counts, h.now(), problems)
	h.renderPage(w, r, "Overview", data.Unread, dashboard.Overview(data))
}

// renderPage renders body inside the page chrome. Render errors are mapped by
// renderError.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, title string, unread int, body templ.Component, opts ...func(*templ.ComponentHandler)) {
	page := layout.Page(layout.PageData{Title: title, Unread: unread, Body: body})
	h.render(w, r, page, opts...)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, c templ.Component, opts ...func(*templ.ComponentHandler)) {
	opts = append(opts, templ.WithErrorHandler(renderError))
	templ.Handler(c, opts...).ServeHTTP(w, r)
}

// unread counts unread messages for the sidebar badge. Failures degrade to zero.
func (h *Handlers) unread(ctx context.Context) int {
	messages, err := h.content.ListMessages(ctx, custommw.TokenFromContext(ctx))
	if err != nil {
		observability.FromContext(ctx).Debug("unread count unavailable", zap.Error(err))
		return 0
	}
	return content.UnreadCount(messages)
}

func renderError(_ *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status, code, message := http.StatusBadGateway, "backend_unavailable", "The content backend could not be reached. Try again shortly."
		if errors.Is(err, content.ErrNotFound) {
			status, code, message = http.StatusNotFound, "not_found", "The requested item does not exist."
		}
		logger := observability.FromContext(ctx)
		if status >= http.StatusInternalServerError {
			logger.Error("render failed", zap.Error(err))
		} else {
			logger.Info("render failed", zap.Error(err))
		}

		if custommw.IsHTMXRequest(ctx) {
			httpx.WriteError(ctx, w, httpx.NewError(code, message, status))
			return
		}
		http.Error(w, message, status)
	})
}

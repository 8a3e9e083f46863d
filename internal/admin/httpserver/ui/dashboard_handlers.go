package ui

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/listing"
	"finitefield.org/campaign-site/internal/admin/templates/dashboard"
	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/observability"
)

const listingErrorMessage = "The list could not be loaded from the content backend."

// PhotoDashboard lists photos with search, sort and pagination.
func (h *Handlers) PhotoDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	photos, err := h.content.ListPhotos(ctx, custommw.TokenFromContext(ctx))
	data := dashboard.NewPhotoPage(photos, listing.ParseQuery(r.URL.Query()))
	h.renderDashboard(w, r, data, err)
}

// VideoDashboard lists videos with search, sort and pagination.
func (h *Handlers) VideoDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	videos, err := h.content.ListVideos(ctx, custommw.TokenFromContext(ctx))
	data := dashboard.NewVideoPage(videos, listing.ParseQuery(r.URL.Query()))
	h.renderDashboard(w, r, data, err)
}

// PressDashboard lists press articles with search, sort and pagination.
func (h *Handlers) PressDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	articles, err := h.content.ListPress(ctx, custommw.TokenFromContext(ctx))
	data := dashboard.NewPressPage(articles, listing.ParseQuery(r.URL.Query()))
	h.renderDashboard(w, r, data, err)
}

// MessageDashboard lists the inbox. The unread badge comes from the same list.
func (h *Handlers) MessageDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	messages, err := h.content.ListMessages(ctx, custommw.TokenFromContext(ctx))
	data := dashboard.NewMessagePage(messages, listing.ParseQuery(r.URL.Query()), h.now())
	if err != nil {
		h.renderDashboard(w, r, data, err)
		return
	}
	h.renderDashboardWithUnread(w, r, data, content.UnreadCount(messages))
}

func (h *Handlers) renderDashboard(w http.ResponseWriter, r *http.Request, data dashboard.PageData, err error) {
	if err != nil {
		observability.FromContext(r.Context()).Error("dashboard: load failed",
			zap.String("category", string(data.Category)), zap.Error(err))
		data.Error = listingErrorMessage
		h.respondDashboard(w, r, data, h.unread(r.Context()), http.StatusBadGateway)
		return
	}
	h.renderDashboardWithUnread(w, r, data, h.unread(r.Context()))
}

func (h *Handlers) renderDashboardWithUnread(w http.ResponseWriter, r *http.Request, data dashboard.PageData, unread int) {
	h.respondDashboard(w, r, data, unread, http.StatusOK)
}

// respondDashboard answers htmx swaps with the listing fragment and full navigations
// with the page.
func (h *Handlers) respondDashboard(w http.ResponseWriter, r *http.Request, data dashboard.PageData, unread, status int) {
	opts := []func(*templ.ComponentHandler){templ.WithStatus(status)}
	if custommw.WantsFragment(r.Context()) {
		h.render(w, r, dashboard.Table(data), opts...)
		return
	}
	h.renderPage(w, r, data.Title, unread, dashboard.Index(data), opts...)
}

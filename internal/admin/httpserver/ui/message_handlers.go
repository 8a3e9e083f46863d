package ui

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/observability"
)

// MarkMessageRead marks the message read and returns to its detail screen.
func (h *Handlers) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := messageID(r)
	_, err := h.content.MarkMessageRead(ctx, custommw.TokenFromContext(ctx), id)
	switch {
	case err == nil:
		flash(r, "success", "Message marked as read.")
		redirect(w, r, routes.MessagePath(id))
	case errors.Is(err, content.ErrNotFound):
		flash(r, "error", "That message no longer exists.")
		redirect(w, r, routes.MessageDashboard)
	default:
		observability.FromContext(ctx).Error("message: mark read failed", zap.String("message_id", id), zap.Error(err))
		flash(r, "error", "The message could not be updated. Try again shortly.")
		redirect(w, r, routes.MessagePath(id))
	}
}

// DeleteMessage removes the message and returns to the inbox.
func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := messageID(r)
	err := h.content.DeleteMessage(ctx, custommw.TokenFromContext(ctx), id)
	switch {
	case err == nil:
		flash(r, "success", "Message deleted.")
		redirect(w, r, routes.MessageDashboard)
	case errors.Is(err, content.ErrNotFound):
		flash(r, "error", "That message no longer exists.")
		redirect(w, r, routes.MessageDashboard)
	default:
		observability.FromContext(ctx).Error("message: delete failed", zap.String("message_id", id), zap.Error(err))
		flash(r, "error", "The message could not be deleted. Try again shortly.")
		redirect(w, r, routes.MessagePath(id))
	}
}

// messageID reads the id wildcard. chi matches on the escaped path, so the value is
// decoded here.
func messageID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func flash(r *http.Request, kind, message string) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.SetFlash(kind, message)
	}
}

// redirect answers htmx with HX-Redirect and browsers with 303 See Other.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

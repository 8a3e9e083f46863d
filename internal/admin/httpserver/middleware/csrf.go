package middleware

import (
	"context"
	"net/http"

	"finitefield.org/campaign-site/internal/platform/csrf"
)

// CSRFFormField is the hidden form field carrying the token for non-htmx submissions.
const CSRFFormField = csrf.FormField

// CSRFConfig controls cookie/header behaviour.
type CSRFConfig = csrf.Config

// CSRF attaches double-submit cookie protection to the back office.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	return csrf.Protect(cfg)
}

// CSRFTokenFromContext returns the token issued for the current request.
func CSRFTokenFromContext(ctx context.Context) string {
	return csrf.TokenFromContext(ctx)
}

package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	appsession "finitefield.org/campaign-site/internal/admin/session"
	"finitefield.org/campaign-site/internal/admin/templates/auth"
	"finitefield.org/campaign-site/internal/platform/observability"
)

type authHandlers struct {
	authenticator custommw.Authenticator
	basePath      string
	loginPath     string
	projectID     string
}

func newAuthHandlers(authenticator custommw.Authenticator, basePath, loginPath, projectID string) *authHandlers {
	if authenticator == nil {
		panic("auth: authenticator is required")
	}
	basePath = custommw.NormalizeBasePath(basePath)
	if strings.TrimSpace(loginPath) == "" {
		loginPath = resolveLoginPath(basePath, "")
	}
	return &authHandlers{
		authenticator: authenticator,
		basePath:      basePath,
		loginPath:     loginPath,
		projectID:     projectID,
	}
}

func (h *authHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) && !forceLogin(r) {
		http.Redirect(w, r, h.redirectTarget(r.URL.Query().Get("next")), http.StatusFound)
		return
	}
	h.renderLoginPage(w, r, h.buildLoginPageData(r, nil), http.StatusOK)
}

func (h *authHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		state := &loginFormState{Error: "The form could not be submitted. Please try again."}
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusBadRequest)
		return
	}

	state := &loginFormState{Next: r.PostFormValue("next")}
	token := strings.TrimSpace(r.PostFormValue("id_token"))
	if token == "" {
		state.Error = "Sign in with your staff account to continue."
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusBadRequest)
		return
	}

	user, err := h.authenticator.Authenticate(r, token)
	if err != nil || user == nil {
		observability.FromContext(r.Context()).Warn("admin login failed", zap.Error(err))
		state.Error = errorMessageFor(err)
		h.renderLoginPage(w, r, h.buildLoginPageData(r, state), http.StatusUnauthorized)
		return
	}

	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		issued := token
		if user.Token != "" {
			issued = user.Token
		}
		sess.SetUser(&appsession.User{UID: user.UID, Email: user.Email, Name: user.Name})
		sess.SetIDToken(issued)
	}
	observability.FromContext(r.Context()).Info("admin login", zap.String("uid", user.UID))

	target := h.redirectTarget(state.Next)
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}

	redirect := h.loginPath + "?" + url.Values{"status": {"logged_out"}}.Encode()
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

type loginFormState struct {
	Next  string
	Error string
}

func (h *authHandlers) buildLoginPageData(r *http.Request, state *loginFormState) auth.LoginPageData {
	q := r.URL.Query()

	next := h.normalizeNext(q.Get("next"))
	errorText := ""
	if state != nil {
		if state.Next != "" {
			next = h.normalizeNext(state.Next)
		}
		errorText = state.Error
	}

	return auth.LoginPageData{
		Message:   messageForQuery(q),
		Error:     errorText,
		Next:      next,
		LoginPath: h.loginPath,
		CSRFToken: custommw.CSRFTokenFromContext(r.Context()),
		ProjectID: h.projectID,
	}
}

func (h *authHandlers) renderLoginPage(w http.ResponseWriter, r *http.Request, data auth.LoginPageData, status int) {
	templ.Handler(auth.LoginPage(data), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (h *authHandlers) isAuthenticated(r *http.Request) bool {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		return false
	}
	user := sess.User()
	return user != nil && strings.TrimSpace(user.UID) != "" && sess.IDToken() != ""
}

func errorMessageFor(err error) string {
	var authErr *custommw.AuthError
	switch {
	case err == nil:
		return "Sign in failed for an unknown reason."
	case errors.As(err, &authErr) && authErr.Reason == custommw.ReasonTokenExpired:
		return "Your sign-in has expired. Please sign in again."
	case errors.As(err, &authErr), errors.Is(err, custommw.ErrUnauthorized):
		return "That account could not be verified."
	default:
		return "Sign in is unavailable right now. Please try again later."
	}
}

func messageForQuery(q url.Values) string {
	if q.Get("status") == "logged_out" {
		return "You have been signed out."
	}
	switch q.Get("reason") {
	case custommw.ReasonTokenExpired, "expired":
		return "Your session has expired. Please sign in again."
	case custommw.ReasonMissingToken:
		return "Please sign in to continue."
	case custommw.ReasonTokenInvalid:
		return "Your sign-in could not be verified. Please try again."
	default:
		return ""
	}
}

func (h *authHandlers) redirectTarget(raw string) string {
	if next := h.normalizeNext(raw); next != "" {
		return next
	}
	return h.basePath
}

func forceLogin(r *http.Request) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("force"))) {
	case "1", "true", "yes", "force":
		return true
	default:
		return false
	}
}

func (h *authHandlers) normalizeNext(raw string) string {
	sanitized := sanitizeNextTarget(h.basePath, raw)
	if sanitized == "" {
		return ""
	}
	if parsed, err := url.Parse(sanitized); err == nil && samePath(parsed.Path, h.loginPath) {
		return ""
	}
	return sanitized
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return custommw.NormalizeBasePath(a) == custommw.NormalizeBasePath(b)
}

// sanitizeNextTarget keeps only same-origin paths under basePath.
func sanitizeNextTarget(basePath, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}

	pathValue := parsed.EscapedPath()
	if pathValue == "" {
		pathValue = "/"
	}
	unescaped, err := url.PathUnescape(pathValue)
	if err != nil || strings.Contains(unescaped, "\\") {
		return ""
	}

	cleaned := path.Clean(pathValue)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	if strings.HasPrefix(cleaned, "//") {
		return ""
	}

	base := custommw.NormalizeBasePath(basePath)
	if base != "/" && (!hasSafePrefix(cleaned, base) || !hasSafePrefix(path.Clean("/"+unescaped), base)) {
		return ""
	}

	target := cleaned
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	return target
}

func hasSafePrefix(pathValue, base string) bool {
	if !strings.HasPrefix(pathValue, base) {
		return false
	}
	return len(pathValue) == len(base) || pathValue[len(base)] == '/'
}

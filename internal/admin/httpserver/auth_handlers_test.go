package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
)

func TestSanitizeNextTarget(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                              "",
		"/admin":                        "/admin",
		"/admin/read/7?x=1":             "/admin/read/7?x=1",
		"/admin/message/a%20b%2Fc":      "/admin/message/a%20b%2Fc",
		"https://evil.example/admin":    "",
		"//evil.example/admin":          "",
		"/admin/../etc":                 "",
		"/admin/%2e%2e/etc":             "",
		"/administrator":                "",
		"/admin\\evil":                  "",
		"/other":                        "",
		"/admin/photoDashboard#listing": "/admin/photoDashboard",
	}
	for raw, want := range cases {
		require.Equal(t, want, sanitizeNextTarget("/admin", raw), raw)
	}
}

func TestNormalizeNextSkipsLoginPage(t *testing.T) {
	t.Parallel()

	h := newAuthHandlers(stubAuthenticator{}, "/admin", "", "")
	require.Equal(t, "/admin/login", h.loginPath)
	require.Equal(t, "", h.normalizeNext("/admin/login"))
	require.Equal(t, "", h.normalizeNext("/admin/login/"))
	require.Equal(t, "/admin", h.redirectTarget("/admin/login"))
	require.Equal(t, "/admin/play/99", h.redirectTarget("/admin/play/99"))
}

func TestChiPatternFromTemplates(t *testing.T) {
	t.Parallel()

	got := make([]string, 0, 10)
	for _, desc := range routes.AdminRegistry(routes.Screens{}).Descriptors() {
		got = append(got, chiPattern(desc.Template))
	}
	require.Equal(t, []string{
		"/addPhoto", "/view/{id}", "/edit/{id}",
		"/addVideo", "/play/{id}", "/editVideo/{id}",
		"/addPress", "/read/{id}", "/editPress/{id}",
		"/message/{id}",
	}, got)
}

func TestResolveLoginPathStaysUnderMount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/admin/login", resolveLoginPath("/admin", ""))
	require.Equal(t, "/admin/signin", resolveLoginPath("/admin", "/admin/signin"))
	require.Equal(t, "/admin/login", resolveLoginPath("/admin", "/login"))
}

type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(*http.Request, string) (*custommw.User, error) {
	return nil, custommw.ErrUnauthorized
}

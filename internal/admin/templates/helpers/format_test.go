package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, "2:34", Duration(154*time.Second))
	require.Equal(t, "1:01:05", Duration(time.Hour+65*time.Second))
	require.Equal(t, "–", Duration(0))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "just now", Relative(now.Add(-10*time.Second), now))
	require.Equal(t, "5m ago", Relative(now.Add(-5*time.Minute), now))
	require.Equal(t, "3h ago", Relative(now.Add(-3*time.Hour), now))
	require.Equal(t, "2026-04-28", Relative(now.Add(-72*time.Hour), now))
	require.Equal(t, "–", Relative(time.Time{}, now))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Town…", Truncate("Town hall", 5))
	require.Equal(t, "Town hall", Truncate(" Town hall ", 20))
}

func TestNavActiveUsesParentDashboard(t *testing.T) {
	t.Parallel()

	var ctx context.Context
	handler := middleware.RequestInfoMiddleware("/admin")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/play/99", nil))

	require.False(t, NavActive(ctx, routes.VideoDashboard, false))

	ctx = middleware.WithResolvedRoute(ctx, middleware.ResolvedRoute{
		Path:            "/admin/play/99",
		ParentDashboard: routes.VideoDashboard,
		Category:        routes.CategoryVideo,
	})
	require.True(t, NavActive(ctx, routes.VideoDashboard, false))
	require.False(t, NavActive(ctx, routes.PhotoDashboard, false))
	require.True(t, NavActive(ctx, "/admin", true))
}

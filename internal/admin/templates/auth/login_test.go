package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestLoginPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := LoginPage(LoginPageData{
		Error:     "Your session expired. Please sign in again.",
		Next:      "/admin/message/m-1",
		LoginPath: "/admin/login",
		CSRFToken: "csrf-123",
		ProjectID: "campaign-dev",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	form := doc.Find("[data-login-form]")
	require.Equal(t, "/admin/login", form.AttrOr("action", ""))
	require.Equal(t, "campaign-dev", form.AttrOr("data-firebase-project", ""))
	require.Equal(t, "csrf-123", form.Find(`input[name="csrf_token"]`).AttrOr("value", ""))
	require.Equal(t, "/admin/message/m-1", form.Find(`input[name="next"]`).AttrOr("value", ""))
	require.Equal(t, 1, form.Find(`textarea[name="id_token"]`).Length())
	require.Equal(t, "Your session expired. Please sign in again.", doc.Find("[data-login-error]").Text())
	require.Equal(t, 0, doc.Find("[data-login-message]").Length())
}

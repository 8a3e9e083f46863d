package httpserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/testutil"
)

const staffToken = "staff-token"

func get(t *testing.T, client *http.Client, target string, headers ...string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return do(t, client, req)
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, client, req)
}

func do(t *testing.T, client *http.Client, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// signIn posts the staff token through the login form and returns the client holding
// the session and CSRF cookies.
func signIn(t *testing.T, ts *httptest.Server) *http.Client {
	t.Helper()

	client := testutil.NewClient(t)
	resp, body := get(t, client, ts.URL+"/admin/login")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	csrf := testutil.ParseHTML(t, body).Find(`input[name="csrf_token"]`).AttrOr("value", "")
	require.NotEmpty(t, csrf)

	resp, _ = postForm(t, client, ts.URL+"/admin/login", url.Values{
		"csrf_token": {csrf},
		"id_token":   {staffToken},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))
	return client
}

func csrfToken(t *testing.T, doc *goquery.Document) string {
	t.Helper()

	token := doc.Find(`meta[name="csrf-token"]`).AttrOr("content", "")
	require.NotEmpty(t, token)
	return token
}

func TestDashboardRedirectsWithoutAuth(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, _ := get(t, testutil.NewClient(t), ts.URL+"/admin")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin/login?next=%2Fadmin", resp.Header.Get("Location"))
}

func TestOverviewRendersForBearerToken(t *testing.T) {
	t.Parallel()

	auth := &tokenAuthenticator{Token: staffToken}
	ts := testutil.NewServer(t, testutil.WithAuthenticator(auth))

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/admin", "Authorization", "Bearer "+staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "Overview · Campaign Admin", doc.Find("title").First().Text())
	require.Equal(t, "Overview", doc.Find("main h1").First().Text())
	require.Equal(t, 4, doc.Find("[data-card]").Length())
	require.Equal(t, "3", doc.Find(`[data-card="photo"] [data-count]`).Text())
	require.Contains(t, doc.Find("[data-user-menu]").Text(), "Tester")
	require.Equal(t, "2", doc.Find(`[data-nav-badge]`).First().Text())
}

func TestScreensLinkBackToParentDashboard(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	cases := []struct {
		path   string
		back   string
		marker string
	}{
		{"/admin/view/42", "/admin/photoDashboard", "[data-photo]"},
		{"/admin/edit/42", "/admin/photoDashboard", "[data-shell]"},
		{"/admin/addPhoto", "/admin/photoDashboard", "[data-shell]"},
		{"/admin/play/99", "/admin/videoDashboard", "video[controls]"},
		{"/admin/editVideo/99", "/admin/videoDashboard", "[data-shell]"},
		{"/admin/addVideo", "/admin/videoDashboard", "[data-shell]"},
		{"/admin/read/7", "/admin/pressDashboard", "[data-press-body]"},
		{"/admin/editPress/7", "/admin/pressDashboard", "[data-shell]"},
		{"/admin/addPress", "/admin/pressDashboard", "[data-shell]"},
		{"/admin/message/m-1", "/admin/messageDashboard", "[data-message]"},
	}
	for _, tc := range cases {
		resp, body := get(t, client, ts.URL+tc.path, "Authorization", "Bearer "+staffToken)
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.path)

		doc := testutil.ParseHTML(t, body)
		require.Equal(t, tc.back, doc.Find("a[data-back-link]").AttrOr("href", ""), tc.path)
		require.Equal(t, 1, doc.Find(tc.marker).Length(), tc.path)
		require.Equal(t, 0, doc.Find("main form:not([data-mark-read]):not([data-delete])").Length(), tc.path)
	}
}

func TestPressScreenRendersMarkdown(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/admin/read/7", "Authorization", "Bearer "+staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, "zoning reform", doc.Find("[data-press-body] strong").First().Text())
	require.Equal(t, 3, doc.Find("[data-press-body] li").Length())
}

func TestUnknownRecordIsNotFound(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, _ := get(t, testutil.NewClient(t), ts.URL+"/admin/view/missing", "Authorization", "Bearer "+staffToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/admin/play/missing", "Authorization", "Bearer "+staffToken, "HX-Request", "true")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, string(body), `"error":"not_found"`)
}

func TestDashboardHasNoBackLink(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/admin/photoDashboard", "Authorization", "Bearer "+staffToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 0, doc.Find("a[data-back-link]").Length())
	require.Equal(t, 3, doc.Find("#listing [data-row]").Length())
	require.Equal(t, "/admin/view/42", doc.Find("#listing [data-row-link]").First().AttrOr("href", ""))
	require.Equal(t, "page", doc.Find(`[data-nav="photo"]`).AttrOr("aria-current", ""))
}

func TestDashboardFragmentForHTMX(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/admin/pressDashboard?q=housing", "Authorization", "Bearer "+staffToken, "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(string(body), `<section id="listing"`))
	require.NotContains(t, string(body), "<html")

	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find("[data-row]").Length())
	require.Equal(t, "housing", doc.Find("[data-row] mark").First().Text())
}

func TestLoginSessionCarriesIdentity(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := signIn(t, ts)

	resp, body := get(t, client, ts.URL+"/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, testutil.ParseHTML(t, body).Find("[data-user-menu]").Text(), "Developer")

	resp, _ = get(t, client, ts.URL+"/admin/login")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLoginRejectsForeignNext(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp, body := get(t, client, ts.URL+"/admin/login?next=https://evil.example/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 0, doc.Find(`input[name="next"]`).Length())

	resp, _ = postForm(t, client, ts.URL+"/admin/login", url.Values{
		"csrf_token": {doc.Find(`input[name="csrf_token"]`).AttrOr("value", "")},
		"id_token":   {staffToken},
		"next":       {"/admin/../elsewhere"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestLoginWithBadTokenShowsError(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithAuthenticator(&tokenAuthenticator{Token: staffToken}))
	client := testutil.NewClient(t)

	_, body := get(t, client, ts.URL+"/admin/login")
	csrf := testutil.ParseHTML(t, body).Find(`input[name="csrf_token"]`).AttrOr("value", "")

	resp, body := postForm(t, client, ts.URL+"/admin/login", url.Values{
		"csrf_token": {csrf},
		"id_token":   {"wrong"},
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "That account could not be verified.", testutil.ParseHTML(t, body).Find("[data-login-error]").Text())
}

func TestMarkMessageReadFlashesAndRedirects(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := signIn(t, ts)

	_, body := get(t, client, ts.URL+"/admin/message/m-3")
	doc := testutil.ParseHTML(t, body)
	require.Equal(t, 1, doc.Find("form[data-mark-read]").Length())

	resp, _ := postForm(t, client, ts.URL+"/admin/message/m-3/read", url.Values{"csrf_token": {csrfToken(t, doc)}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/message/m-3", resp.Header.Get("Location"))

	_, body = get(t, client, ts.URL+"/admin/message/m-3")
	doc = testutil.ParseHTML(t, body)
	require.Equal(t, "Message marked as read.", doc.Find("[data-flash]").Text())
	require.Equal(t, 0, doc.Find("form[data-mark-read]").Length())

	_, body = get(t, client, ts.URL+"/admin/message/m-3")
	require.Equal(t, 0, testutil.ParseHTML(t, body).Find("[data-flash]").Length())
}

func TestDeleteMessageReturnsToInbox(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := signIn(t, ts)

	_, body := get(t, client, ts.URL+"/admin/message/m-1")
	token := csrfToken(t, testutil.ParseHTML(t, body))

	resp, _ := postForm(t, client, ts.URL+"/admin/message/m-1/delete", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/messageDashboard", resp.Header.Get("Location"))

	resp, _ = get(t, client, ts.URL+"/admin/message/m-1")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body = get(t, client, ts.URL+"/admin/messageDashboard")
	require.Equal(t, 2, testutil.ParseHTML(t, body).Find("#listing [data-row]").Length())
}

func TestUnsafeRequestsRequireCSRFToken(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := signIn(t, ts)

	resp, _ := postForm(t, client, ts.URL+"/admin/message/m-3/read", url.Values{})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := signIn(t, ts)

	_, body := get(t, client, ts.URL+"/admin")
	token := csrfToken(t, testutil.ParseHTML(t, body))

	resp, _ := postForm(t, client, ts.URL+"/admin/logout", url.Values{"csrf_token": {token}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login?status=logged_out", resp.Header.Get("Location"))

	resp, _ = get(t, client, ts.URL+"/admin")
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestStaticAssetsAreServed(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, body := get(t, testutil.NewClient(t), ts.URL+"/public/static/admin.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "mark {")
}

type tokenAuthenticator struct {
	Token string
}

func (t *tokenAuthenticator) Authenticate(_ *http.Request, token string) (*middleware.User, error) {
	if token != t.Token {
		return nil, middleware.ErrUnauthorized
	}
	return &middleware.User{
		UID:   "tester",
		Email: "tester@example.com",
		Name:  "Tester",
		Token: token,
	}, nil
}

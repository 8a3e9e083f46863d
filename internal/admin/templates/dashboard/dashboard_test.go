package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"finitefield.org/campaign-site/internal/admin/listing"
	"finitefield.org/campaign-site/internal/content"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestPhotoPageLinksRowsToScreens(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	photos := []content.Photo{
		{ID: "1", Title: "Town hall", Caption: "Packed room", CreatedAt: now.Add(-time.Hour)},
		{ID: "2", Title: "Rally", Caption: "Rain did not stop anyone", CreatedAt: now},
	}

	data := NewPhotoPage(photos, listing.ParseQuery(url.Values{}))
	doc := render(t, Index(data))

	rows := doc.Find("[data-row]")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "2", rows.First().AttrOr("data-id", ""))
	require.Equal(t, "/admin/view/2", rows.First().Find("[data-row-link]").AttrOr("href", ""))
	require.Equal(t, "/admin/edit/2", rows.First().Find("[data-row-edit]").AttrOr("href", ""))
	require.Equal(t, "/admin/addPhoto", doc.Find("[data-add]").AttrOr("href", ""))
	require.Equal(t, "photo", doc.Find("#listing").AttrOr("data-category", ""))
}

func TestSearchHighlightsMatches(t *testing.T) {
	t.Parallel()

	articles := []content.PressArticle{
		{ID: "7", Title: "Zoning reform explained", Outlet: "Daily"},
		{ID: "6", Title: "Budget night", Outlet: "Weekly"},
	}
	data := NewPressPage(articles, listing.ParseQuery(url.Values{"q": {"zoning"}}))
	doc := render(t, Table(data))

	require.Equal(t, 1, doc.Find("[data-row]").Length())
	require.Equal(t, "Zoning", doc.Find("[data-row] mark").First().Text())
	require.Equal(t, "/admin/read/7", doc.Find("[data-row-link]").AttrOr("href", ""))
}

func TestEmptyListingShowsPlaceholder(t *testing.T) {
	t.Parallel()

	data := NewVideoPage(nil, listing.ParseQuery(url.Values{}))
	doc := render(t, Table(data))

	require.Equal(t, 0, doc.Find("[data-row]").Length())
	require.Equal(t, "No videos match.", doc.Find("[data-empty]").Text())
}

func TestListingErrorIsRendered(t *testing.T) {
	t.Parallel()

	data := NewMessagePage(nil, listing.ParseQuery(url.Values{}), time.Now())
	data.Error = "backend unavailable"
	doc := render(t, Table(data))

	require.Equal(t, "backend unavailable", doc.Find("[data-listing-error]").Text())
	require.Equal(t, 0, doc.Find("[data-empty]").Length())
}

func TestMessagePageMarksUnread(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	messages := []content.Message{
		{ID: "m-2", Name: "Ana", Email: "ana@example.com", Subject: "Volunteering", ReceivedAt: now.Add(-2 * time.Hour)},
		{ID: "m-1", Name: "Ben", Email: "ben@example.com", Body: "Thanks for the visit", Read: true, ReceivedAt: now.Add(-3 * time.Hour)},
	}
	data := NewMessagePage(messages, listing.ParseQuery(url.Values{}), now)
	doc := render(t, Table(data))

	rows := doc.Find("[data-row]")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "Unread", rows.First().Find("[data-badge]").Text())
	require.Equal(t, 0, rows.Last().Find("[data-badge]").Length())
	require.Equal(t, "Thanks for the visit", rows.Last().Find("[data-row-link]").Text())
	require.Equal(t, "/admin/message/m-1", rows.Last().Find("[data-row-link]").AttrOr("href", ""))
	require.Equal(t, "2h ago", rows.First().Find("span").Last().Text())
}

func TestPaginationAcrossPages(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	photos := make([]content.Photo, 0, 30)
	for i := 0; i < 30; i++ {
		photos = append(photos, content.Photo{ID: fmt.Sprint(i), Title: fmt.Sprintf("Photo %02d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	data := NewPhotoPage(photos, listing.ParseQuery(url.Values{"page": {"3"}}))
	doc := render(t, Table(data))

	require.Equal(t, 6, doc.Find("[data-row]").Length())
	require.Equal(t, "/admin/photoDashboard?page=2", doc.Find(`a[rel="prev"]`).AttrOr("href", ""))
	require.Equal(t, 0, doc.Find(`a[rel="next"]`).Length())
}

func TestOverviewSummarisesCollections(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	messages := make([]content.Message, 0, 7)
	for i := 0; i < 7; i++ {
		messages = append(messages, content.Message{ID: fmt.Sprintf("m-%d", i), Subject: "Hello", Read: i%2 == 0, ReceivedAt: now})
	}
	data := NewOverview(Counts{Photos: 3, Videos: 2, Press: 1, Messages: messages}, now, []string{"press unavailable"})
	require.Equal(t, 3, data.Unread)
	require.Len(t, data.RecentMessages, 5)

	doc := render(t, Overview(data))
	require.Equal(t, 4, doc.Find("[data-card]").Length())
	require.Equal(t, "3", doc.Find(`[data-card="photo"] [data-count]`).Text())
	require.Equal(t, "/admin/messageDashboard", doc.Find(`[data-card="message"]`).AttrOr("href", ""))
	require.Contains(t, doc.Find(`[data-card="message"]`).Text(), "3 unread")
	require.Equal(t, "press unavailable", doc.Find("[data-overview-error]").Text())
	require.Equal(t, 5, doc.Find("[data-row]").Length())
}

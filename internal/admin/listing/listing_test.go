package listing

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type item struct {
	title string
	at    time.Time
}

var itemAccessors = Accessors[item]{
	Text:  func(i item) []string { return []string{i.title} },
	Title: func(i item) string { return i.title },
	Time:  func(i item) time.Time { return i.at },
}

func makeItems(n int) []item {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]item, n)
	for i := range out {
		out[i] = item{title: fmt.Sprintf("Item %02d", i+1), at: base.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func TestParseQueryDefaults(t *testing.T) {
	t.Parallel()

	q := ParseQuery(url.Values{})
	require.Equal(t, Query{Sort: SortNewest, Page: 1, PerPage: DefaultPerPage}, q)
	require.Empty(t, q.Values().Encode())
}

func TestParseQueryClampsAndNormalises(t *testing.T) {
	t.Parallel()

	q := ParseQuery(url.Values{
		"q":    {"  Rally "},
		"sort": {"TITLE"},
		"page": {"-3"},
		"per":  {"500"},
	})
	require.Equal(t, "Rally", q.Search)
	require.Equal(t, SortTitle, q.Sort)
	require.Equal(t, 1, q.Page)
	require.Equal(t, MaxPerPage, q.PerPage)

	q = ParseQuery(url.Values{"sort": {"random"}, "per": {"abc"}})
	require.Equal(t, SortNewest, q.Sort)
	require.Equal(t, DefaultPerPage, q.PerPage)
}

func TestQueryURL(t *testing.T) {
	t.Parallel()

	q := Query{Search: "town hall", Sort: SortOldest, Page: 2, PerPage: DefaultPerPage}
	require.Equal(t, "/admin/photoDashboard?page=2&q=town+hall&sort=oldest", q.URL("/admin/photoDashboard"))
	require.Equal(t, "/admin/photoDashboard", Query{Sort: SortNewest, Page: 1}.URL("/admin/photoDashboard"))
}

func TestApplyPaginatesNewestFirst(t *testing.T) {
	t.Parallel()

	page := Apply(makeItems(30), Query{Sort: SortNewest, Page: 2, PerPage: 12}, itemAccessors)
	require.Equal(t, 30, page.Total)
	require.Equal(t, 3, page.Pages)
	require.Equal(t, 2, page.Current)
	require.Len(t, page.Items, 12)
	require.Equal(t, "Item 18", page.Items[0].title)
	require.True(t, page.HasPrev())
	require.True(t, page.HasNext())
}

func TestApplyClampsPastLastPage(t *testing.T) {
	t.Parallel()

	page := Apply(makeItems(5), Query{Sort: SortOldest, Page: 9, PerPage: 2}, itemAccessors)
	require.Equal(t, 3, page.Current)
	require.Equal(t, 3, page.Query.Page)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Item 05", page.Items[0].title)
	require.False(t, page.HasNext())
}

func TestApplyFiltersCaseInsensitively(t *testing.T) {
	t.Parallel()

	items := []item{{title: "Town Hall"}, {title: "Rally"}, {title: "town hall recap"}}
	page := Apply(items, Query{Search: "TOWN", Sort: SortTitle, Page: 1}, itemAccessors)
	require.Equal(t, 2, page.Total)
	require.Equal(t, "Town Hall", page.Items[0].title)
	require.Equal(t, "town hall recap", page.Items[1].title)
}

func TestApplyEmpty(t *testing.T) {
	t.Parallel()

	page := Apply(nil, ParseQuery(url.Values{}), itemAccessors)
	require.Zero(t, page.Total)
	require.Equal(t, 1, page.Pages)
	require.Empty(t, page.Items)
	require.False(t, page.HasPrev())
	require.False(t, page.HasNext())
}

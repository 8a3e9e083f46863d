package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesSanitizedHTML(t *testing.T) {
	t.Parallel()

	r := New()
	html, err := r.Render("## Plan\n\nWe will fix **transit**.\n\n<script>alert(1)</script>\n\n[Ledger](https://example.com/ledger)")
	require.NoError(t, err)
	require.NotContains(t, html, "<script")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	require.Equal(t, "Plan", doc.Find("h2").Text())
	require.Equal(t, "transit", doc.Find("strong").Text())

	link := doc.Find("a")
	href, _ := link.Attr("href")
	rel, _ := link.Attr("rel")
	require.Equal(t, "https://example.com/ledger", href)
	require.Contains(t, rel, "nofollow")
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	html, err := New().Render("   ")
	require.NoError(t, err)
	require.Empty(t, html)
}

func TestRenderTables(t *testing.T) {
	t.Parallel()

	html, err := New().Render("| Year | Role |\n|---|---|\n| 2020 | Council |")
	require.NoError(t, err)
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "<td>Council</td>")
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	r := New()
	require.Equal(t, "The plan focuses on zoning reform.", r.Excerpt("The plan focuses on **zoning reform**.\n\nSecond paragraph.", 0))
	require.Equal(t, "The plan…", r.Excerpt("The plan focuses on zoning.", 9))
	require.Empty(t, r.Excerpt("", 10))
}

package markup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

func TestMarkupEscapesAndSanitises(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := New(&buf)
	m.Raw("<a").Href("javascript:alert(1)").Attr("title", `"quoted"`).Raw(">").Text("<b>").Raw("</a>")
	require.NoError(t, m.Err())
	require.NotContains(t, buf.String(), "javascript:")
	require.Contains(t, buf.String(), "&lt;b&gt;")
	require.Contains(t, buf.String(), "&#34;quoted&#34;")
}

func TestMarkupStopsAfterFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	var buf bytes.Buffer
	m := New(&buf).Raw("a").Component(context.Background(), failing).Raw("b")
	require.ErrorIs(t, m.Err(), boom)
	require.Equal(t, "a", buf.String())
}

func TestHighlightSegments(t *testing.T) {
	t.Parallel()

	segments := HighlightSegments("Town hall at the Town square", "town")
	require.Equal(t, []HighlightSegment{
		{Text: "Town", Match: true},
		{Text: " hall at the "},
		{Text: "Town", Match: true},
		{Text: " square"},
	}, segments)
	require.Equal(t, []HighlightSegment{{Text: "Rally"}}, HighlightSegments("Rally", ""))
	require.Nil(t, HighlightSegments("", "x"))

	var buf bytes.Buffer
	require.NoError(t, New(&buf).Highlight("a<b", "<").Err())
	require.Equal(t, "a<mark>&lt;</mark>b", buf.String())
}

// Package markup writes hand-assembled HTML for templ components.
package markup

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Markup writes HTML for hand-assembled components. The first write error sticks and
// every later call becomes a no-op, so callers check Err once at the end.
type Markup struct {
	w   io.Writer
	err error
}

// New wraps w.
func New(w io.Writer) *Markup {
	return &Markup{w: w}
}

// Raw writes trusted markup verbatim.
func (m *Markup) Raw(s string) *Markup {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
	return m
}

// Text writes HTML-escaped text.
func (m *Markup) Text(s string) *Markup {
	return m.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (m *Markup) Attr(name, value string) *Markup {
	return m.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// Href writes an href attribute after URL sanitisation.
func (m *Markup) Href(url string) *Markup {
	return m.Attr("href", string(templ.URL(url)))
}

// Src writes a src attribute after URL sanitisation.
func (m *Markup) Src(url string) *Markup {
	return m.Attr("src", string(templ.URL(url)))
}

// BoolAttr writes a bare attribute when on is true.
func (m *Markup) BoolAttr(name string, on bool) *Markup {
	if on {
		return m.Raw(" " + name)
	}
	return m
}

// Component renders c in place. Nil components are skipped.
func (m *Markup) Component(ctx context.Context, c templ.Component) *Markup {
	if m.err == nil && c != nil {
		m.err = c.Render(ctx, m.w)
	}
	return m
}

// Err returns the first error encountered.
func (m *Markup) Err() error {
	return m.err
}

// HighlightSegment is a piece of text flagged when it matches the search term.
type HighlightSegment struct {
	Text  string
	Match bool
}

// HighlightSegments splits text into segments, marking case-insensitive matches of term.
func HighlightSegments(text, term string) []HighlightSegment {
	term = strings.TrimSpace(term)
	if text == "" {
		return nil
	}
	if term == "" {
		return []HighlightSegment{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)
	if len(lowerText) != len(text) {
		// Case folding changed byte offsets; fall back to an unhighlighted segment.
		return []HighlightSegment{{Text: text}}
	}

	var segments []HighlightSegment
	cursor := 0
	for cursor < len(text) {
		index := strings.Index(lowerText[cursor:], lowerTerm)
		if index < 0 {
			break
		}
		if index > 0 {
			segments = append(segments, HighlightSegment{Text: text[cursor : cursor+index]})
		}
		end := cursor + index + len(lowerTerm)
		segments = append(segments, HighlightSegment{Text: text[cursor+index : end], Match: true})
		cursor = end
	}
	if cursor < len(text) {
		segments = append(segments, HighlightSegment{Text: text[cursor:]})
	}
	return segments
}

// Highlight writes text with matches wrapped in <mark>.
func (m *Markup) Highlight(text, term string) *Markup {
	for _, seg := range HighlightSegments(text, term) {
		if seg.Match {
			m.Raw("<mark>").Text(seg.Text).Raw("</mark>")
			continue
		}
		m.Text(seg.Text)
	}
	return m
}

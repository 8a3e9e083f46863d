// Package markdown renders press article bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts markdown to HTML and strips anything outside the allowed policy.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New constructs a Renderer with GFM tables, strikethrough and autolinks enabled.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{md: md, policy: newPolicy()}
}

// Render returns the sanitized HTML for source. Empty input yields an empty string.
func (r *Renderer) Render(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// Excerpt returns the first paragraph as plain text, truncated to limit runes.
func (r *Renderer) Excerpt(source string, limit int) string {
	rendered, err := r.Render(source)
	if err != nil || rendered == "" {
		return ""
	}
	first := rendered
	if idx := strings.Index(first, "</p>"); idx >= 0 {
		if start := strings.Index(first, "<p>"); start >= 0 && start < idx {
			first = first[start+len("<p>") : idx]
		}
	}
	text := strings.Join(strings.Fields(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(first))), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

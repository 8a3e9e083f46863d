package seo

import "strings"

// OpenGraph carries og:* properties.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Meta is the head metadata for a page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	JSONLD      []string
}

// NewMeta fills the common fields. baseURL may be empty, in which case canonical
// and og:url are left unset.
func NewMeta(siteName, title, description, baseURL, path string) Meta {
	full := siteName
	if title != "" && title != siteName {
		full = title + " · " + siteName
	}
	m := Meta{
		Title:       full,
		Description: description,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
			SiteName:    siteName,
		},
	}
	if path == "" {
		path = "/"
	}
	if abs := Absolute(baseURL, path); abs != "" {
		m.Canonical = abs
		m.OG.URL = abs
	}
	return m
}

// Absolute resolves path against baseURL. Absolute URLs pass through; otherwise it
// returns "" when either part is empty.
func Absolute(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return path
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	return baseURL + "/" + strings.TrimPrefix(path, "/")
}

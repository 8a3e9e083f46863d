// Package listing parses dashboard query parameters and applies filtering, sorting
// and pagination to in-memory collections.
package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPerPage is used when the per parameter is absent or invalid.
	DefaultPerPage = 12
	// MaxPerPage caps the per parameter.
	MaxPerPage = 48
)

// Sort orders a dashboard listing.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
)

// Sorts lists the supported orderings in display order.
var Sorts = []Sort{SortNewest, SortOldest, SortTitle}

// Label returns the display label for the ordering.
func (s Sort) Label() string {
	switch s {
	case SortOldest:
		return "Oldest first"
	case SortTitle:
		return "Title A–Z"
	default:
		return "Newest first"
	}
}

// Query captures the dashboard state carried in the URL.
type Query struct {
	Search  string
	Sort    Sort
	Page    int
	PerPage int
}

// ParseQuery reads q, sort, page and per from values, falling back to defaults.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:  strings.TrimSpace(values.Get("q")),
		Sort:    SortNewest,
		Page:    1,
		PerPage: DefaultPerPage,
	}
	switch Sort(strings.ToLower(strings.TrimSpace(values.Get("sort")))) {
	case SortOldest:
		q.Sort = SortOldest
	case SortTitle:
		q.Sort = SortTitle
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if per, err := strconv.Atoi(values.Get("per")); err == nil && per > 0 {
		q.PerPage = min(per, MaxPerPage)
	}
	return q
}

// Values encodes the query, omitting defaults.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	if q.Sort != "" && q.Sort != SortNewest {
		values.Set("sort", string(q.Sort))
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 && q.PerPage != DefaultPerPage {
		values.Set("per", strconv.Itoa(q.PerPage))
	}
	return values
}

// WithPage returns a copy pointing at page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// URL renders path with the encoded query.
func (q Query) URL(path string) string {
	if encoded := q.Values().Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// Accessors exposes the fields Apply needs from an item.
type Accessors[T any] struct {
	Text  func(T) []string
	Title func(T) string
	Time  func(T) time.Time
}

// Page is one page of a filtered, sorted collection.
type Page[T any] struct {
	Items   []T
	Query   Query
	Total   int
	Pages   int
	Current int
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Current > 1 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Current < p.Pages }

// Apply filters items by the search term, orders them and slices out the requested page.
// A page beyond the end is clamped to the last page.
func Apply[T any](items []T, q Query, acc Accessors[T]) Page[T] {
	needle := strings.ToLower(q.Search)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(acc.Text(item), needle) {
			filtered = append(filtered, item)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		switch q.Sort {
		case SortOldest:
			return acc.Time(filtered[i]).Before(acc.Time(filtered[j]))
		case SortTitle:
			return strings.ToLower(acc.Title(filtered[i])) < strings.ToLower(acc.Title(filtered[j]))
		default:
			return acc.Time(filtered[i]).After(acc.Time(filtered[j]))
		}
	})

	per := q.PerPage
	if per <= 0 {
		per = DefaultPerPage
	}
	total := len(filtered)
	pages := max(1, (total+per-1)/per)
	current := min(max(q.Page, 1), pages)

	start := min((current-1)*per, total)
	end := min(start+per, total)

	q.Page = current
	q.PerPage = per
	return Page[T]{
		Items:   filtered[start:end],
		Query:   q,
		Total:   total,
		Pages:   pages,
		Current: current,
	}
}

func matches(fields []string, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

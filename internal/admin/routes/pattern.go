package routes

import "strings"

// Params holds the wildcard values captured from a concrete path, keyed by wildcard name.
type Params map[string]string

// Get returns the captured value for the named wildcard, or "" when absent.
func (p Params) Get(name string) string {
	if p == nil {
		return ""
	}
	return p[name]
}

type segmentKind uint8

const (
	segmentLiteral segmentKind = iota
	segmentWildcard
)

type segment struct {
	kind segmentKind
	// value is the literal text, or the wildcard name without its ":" marker.
	value string
}

// Matcher is a compiled route template. The zero value matches nothing.
type Matcher struct {
	template string
	segments []segment
}

// Compile converts a route template such as "/admin/edit/:id" into a reusable Matcher.
// Segments prefixed with ":" are wildcards matching exactly one non-empty segment; every
// other segment must match literally. An empty template yields the zero Matcher.
func Compile(template string) Matcher {
	if template == "" {
		return Matcher{}
	}
	parts := strings.Split(template, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if len(part) > 1 && part[0] == ':' {
			segments = append(segments, segment{kind: segmentWildcard, value: part[1:]})
			continue
		}
		segments = append(segments, segment{kind: segmentLiteral, value: part})
	}
	return Matcher{template: template, segments: segments}
}

// Template returns the source template the matcher was compiled from.
func (m Matcher) Template() string {
	return m.template
}

// String implements fmt.Stringer.
func (m Matcher) String() string {
	return m.template
}

// Match reports whether the whole path matches the template. Partial matches and
// trailing slashes are rejected.
func (m Matcher) Match(path string) bool {
	_, ok := m.match(path, false)
	return ok
}

// Params matches the path and returns the captured wildcard values.
func (m Matcher) Params(path string) (Params, bool) {
	return m.match(path, true)
}

func (m Matcher) match(path string, capture bool) (Params, bool) {
	if len(m.segments) == 0 {
		return nil, false
	}
	parts := strings.Split(path, "/")
	if len(parts) != len(m.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range m.segments {
		part := parts[i]
		switch seg.kind {
		case segmentWildcard:
			if part == "" {
				return nil, false
			}
			if capture {
				if params == nil {
					params = make(Params, 1)
				}
				params[seg.value] = part
			}
		default:
			if part != seg.value {
				return nil, false
			}
		}
	}
	if capture && params == nil {
		params = Params{}
	}
	return params, true
}

// Expand builds a concrete path by substituting params into the wildcards. ok is false
// when a wildcard has no non-empty, slash-free value, so the result always matches m.
func (m Matcher) Expand(params Params) (string, bool) {
	if len(m.segments) == 0 {
		return "", false
	}
	parts := make([]string, len(m.segments))
	for i, seg := range m.segments {
		if seg.kind == segmentLiteral {
			parts[i] = seg.value
			continue
		}
		value := params.Get(seg.value)
		if value == "" || strings.Contains(value, "/") {
			return "", false
		}
		parts[i] = value
	}
	return strings.Join(parts, "/"), true
}

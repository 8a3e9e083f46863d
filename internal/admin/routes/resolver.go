package routes

// Resolver maps concrete paths back to their registry descriptor. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	entries []compiledDescriptor
}

type compiledDescriptor struct {
	descriptor Descriptor
	matcher    Matcher
}

// NewResolver compiles every template of the registry once.
func NewResolver(reg *Registry) *Resolver {
	descriptors := reg.Descriptors()
	entries := make([]compiledDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, compiledDescriptor{descriptor: d, matcher: Compile(d.Template)})
	}
	return &Resolver{entries: entries}
}

// Resolve returns the first descriptor whose template matches path, together with the
// captured wildcard values.
func (r *Resolver) Resolve(path string) (Descriptor, Params, bool) {
	if r == nil {
		return Descriptor{}, nil, false
	}
	for _, entry := range r.entries {
		if params, ok := entry.matcher.Params(path); ok {
			return entry.descriptor, params, true
		}
	}
	return Descriptor{}, nil, false
}

// ParentDashboard returns the dashboard path of the first matching descriptor.
func (r *Resolver) ParentDashboard(path string) (string, bool) {
	d, _, ok := r.Resolve(path)
	if !ok {
		return "", false
	}
	return d.ParentDashboard, true
}

// Category returns the category of the first matching descriptor.
func (r *Resolver) Category(path string) (Category, bool) {
	d, _, ok := r.Resolve(path)
	if !ok {
		return "", false
	}
	return d.Category, true
}

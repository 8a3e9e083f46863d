package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildMarksActiveSection(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"/press":        "/press",
		"/press/7":      "/press",
		"/gallery/":     "/gallery",
		"/pressroom":    "",
		"/unknown/page": "",
	}
	for current, want := range cases {
		var active []string
		for _, item := range Build(current) {
			if item.Active {
				active = append(active, item.Href)
			}
		}
		if want == "" {
			if len(active) != 0 {
				t.Errorf("Build(%q) active = %v, want none", current, active)
			}
			continue
		}
		if diff := cmp.Diff([]string{want}, active); diff != "" {
			t.Errorf("Build(%q) active mismatch (-want +got):\n%s", current, diff)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		leaf    string
		want    []Crumb
	}{
		{
			name:    "home",
			current: "/",
			want:    []Crumb{{Href: "/", Label: "Home", Active: true}},
		},
		{
			name:    "section",
			current: "/timeline",
			want: []Crumb{
				{Href: "/", Label: "Home"},
				{Href: "/timeline", Label: "Timeline", Active: true},
			},
		},
		{
			name:    "article with title",
			current: "/press/7",
			leaf:    "Housing plan",
			want: []Crumb{
				{Href: "/", Label: "Home"},
				{Href: "/press", Label: "Press"},
				{Href: "/press/7", Label: "Housing plan", Active: true},
			},
		},
		{
			name:    "prettified segment",
			current: "/press/town-hall",
			want: []Crumb{
				{Href: "/", Label: "Home"},
				{Href: "/press", Label: "Press"},
				{Href: "/press/town-hall", Label: "Town hall", Active: true},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, Breadcrumbs(tc.current, tc.leaf)); diff != "" {
				t.Errorf("Breadcrumbs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

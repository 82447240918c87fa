package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "Community Welcome Evening", want: "community-welcome-evening"},
		{name: "punctuation collapses", title: "What's New? (2026 edition)", want: "what-s-new-2026-edition"},
		{name: "leading and trailing junk", title: "  --Hello--  ", want: "hello"},
		{name: "digits survive", title: "Top 10 Guides", want: "top-10-guides"},
		{name: "empty", title: "", want: ""},
		{name: "only symbols", title: "?!*", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

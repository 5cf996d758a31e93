package services

import "testing"

func TestTitleInitials(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Fotosintesis", "F"},
		{"Hukum Newton", "HN"},
		{"  listrik   statis  ", "LS"},
		{"Énergie Électrique", "ÉÉ"},
		{"Ökonomie", "Ö"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, c := range cases {
		if got := titleInitials(c.title); got != c.want {
			t.Fatalf("titleInitials(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Top 10 Investment Areas", "top-10-investment-areas"},
		{"  Leading   Spaces  ", "leading-spaces"},
		{"Pune's Best Micro-Markets!", "punes-best-micro-markets"},
		{"UPPER case Title", "upper-case-title"},
		{"hyphen - already - there", "hyphen-already-there"},
		{"!!!", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	a := Slugify("Same Title Twice")
	b := Slugify("Same Title Twice")
	if a != b {
		t.Errorf("Slugify is not deterministic: %q vs %q", a, b)
	}
}

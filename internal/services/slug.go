package services

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a post title. Deterministic, no I/O:
// lowercase, strip everything that is not a lowercase letter, digit,
// whitespace, or hyphen, collapse whitespace and hyphen runs to single
// hyphens, and trim leading/trailing hyphens. The same title always
// produces the same slug; uniqueness is the database's problem.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

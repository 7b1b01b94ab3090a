// Package listing narrows an already-fetched, already-published property
// collection in memory and windows it into fixed-size pages. It backs
// both the general listings view and the homepage carousel; the two
// differ only in page size and wrap policy.
package listing

import (
	"strings"

	"github.com/terravista/estates/internal/models"
)

// All is the sentinel a facet dropdown sends to mean "no filter". It is
// distinguishable from any real facet value.
const All = "all"

// Facet identifies one equality-filter dimension.
type Facet int

const (
	FacetLocation Facet = iota
	FacetType
	FacetStatus
	FacetInvestmentPeriod
	FacetValuation
)

// Filters is the client-side narrowing state. SearchTerm matches the
// property name only (narrower than the server-side search, which also
// matches description); each facet is an exact-equality filter, empty
// meaning unfiltered. Matching is a pure conjunction: evaluation order
// never changes the result.
type Filters struct {
	SearchTerm       string
	Location         string
	Type             string
	Status           string
	InvestmentPeriod string
	Valuation        string
}

// Set assigns a facet value. The All sentinel resets the facet to
// unfiltered, equivalent to never having set it.
func (f *Filters) Set(facet Facet, value string) {
	if value == All {
		value = ""
	}
	switch facet {
	case FacetLocation:
		f.Location = value
	case FacetType:
		f.Type = value
	case FacetStatus:
		f.Status = value
	case FacetInvestmentPeriod:
		f.InvestmentPeriod = value
	case FacetValuation:
		f.Valuation = value
	}
}

// Matches reports whether a property passes the search term and every
// non-empty facet.
func (f Filters) Matches(p models.Property) bool {
	if f.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.SearchTerm)) {
		return false
	}
	if f.Location != "" && p.Location != f.Location {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.InvestmentPeriod != "" && p.InvestmentPeriod != f.InvestmentPeriod {
		return false
	}
	if f.Valuation != "" && p.Valuation != f.Valuation {
		return false
	}
	return true
}

// Apply returns the subset of items matching the filters, in input order.
func (f Filters) Apply(items []models.Property) []models.Property {
	filtered := make([]models.Property, 0, len(items))
	for _, p := range items {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

package listing

import (
	"github.com/terravista/estates/internal/models"
)

// FacetOptions derives the selectable dropdown values for a facet from
// the currently fetched collection: distinct observed values in
// first-seen order. The options follow whatever happened to load; they
// are deliberately not the canonical form catalog (see catalog.go),
// which is a separate source of truth.
func FacetOptions(items []models.Property, facet Facet) []string {
	seen := make(map[string]struct{})
	options := make([]string, 0)
	for _, p := range items {
		var value string
		switch facet {
		case FacetLocation:
			value = p.Location
		case FacetType:
			value = p.Type
		case FacetStatus:
			value = p.Status
		case FacetInvestmentPeriod:
			value = p.InvestmentPeriod
		case FacetValuation:
			value = p.Valuation
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		options = append(options, value)
	}
	return options
}

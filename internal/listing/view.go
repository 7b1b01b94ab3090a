package listing

import (
	"github.com/terravista/estates/internal/models"
)

// Default page sizes for the two canonical views.
const (
	ListingPageSize  = 12
	CarouselPageSize = 3
)

// View composes a fetched collection with filter state and a paginator.
// Any filter or search mutation resets the current page to 1 so the
// user never lands on an out-of-range empty page.
type View struct {
	items    []models.Property
	filtered []models.Property
	filters  Filters
	pager    Paginator
	page     int
}

// NewView builds a view over a fetched collection with the given
// paginator. The collection is assumed already restricted to published
// rows server-side.
func NewView(items []models.Property, pager Paginator) *View {
	v := &View{items: items, pager: pager}
	v.refilter()
	return v
}

// NewListingView is the general listings instance: 12 per page, clamped
// navigation.
func NewListingView(items []models.Property) *View {
	return NewView(items, Paginator{PageSize: ListingPageSize, Policy: Clamp})
}

// NewCarouselView is the homepage suggested-properties instance: 3 per
// page, wrapping navigation.
func NewCarouselView(items []models.Property) *View {
	return NewView(items, Paginator{PageSize: CarouselPageSize, Policy: Wrap})
}

// SetSearch updates the search term and resets to page 1.
func (v *View) SetSearch(term string) {
	v.filters.SearchTerm = term
	v.refilter()
}

// SetFacet updates one facet (All resets it) and resets to page 1.
func (v *View) SetFacet(facet Facet, value string) {
	v.filters.Set(facet, value)
	v.refilter()
}

// Filters returns a copy of the current filter state.
func (v *View) Filters() Filters {
	return v.filters
}

// Page returns the current 1-based page.
func (v *View) Page() int {
	return v.page
}

// TotalPages returns the page count of the filtered collection.
func (v *View) TotalPages() int {
	return v.pager.TotalPages(len(v.filtered))
}

// Filtered returns the whole filtered collection, in fetch order.
func (v *View) Filtered() []models.Property {
	return v.filtered
}

// Items returns the current page window.
func (v *View) Items() []models.Property {
	return v.pager.Window(v.filtered, v.page)
}

// Next advances one page under the view's wrap policy.
func (v *View) Next() {
	v.page = v.pager.Next(v.page, v.TotalPages())
}

// Prev goes back one page under the view's wrap policy.
func (v *View) Prev() {
	v.page = v.pager.Prev(v.page, v.TotalPages())
}

func (v *View) refilter() {
	v.filtered = v.filters.Apply(v.items)
	v.page = 1
}

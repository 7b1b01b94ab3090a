package listing

import (
	"github.com/terravista/estates/internal/models"
)

// WrapPolicy decides what page navigation does at the edges.
type WrapPolicy int

const (
	// Clamp makes Next on the last page and Prev on the first a no-op.
	// The general listings view behaves this way.
	Clamp WrapPolicy = iota
	// Wrap moves Next on the last page back to page 1 and Prev on the
	// first page to the last. The homepage carousel behaves this way.
	Wrap
)

// Paginator windows a collection into fixed-size pages. Pages are
// 1-based. The same algorithm serves the listings view (page size 12,
// Clamp) and the carousel (page size 3, Wrap); only the parameters
// differ.
type Paginator struct {
	PageSize int
	Policy   WrapPolicy
}

// TotalPages is ceil(n / PageSize); 0 for an empty collection, which
// renders an empty page list rather than "page 1 of 0".
func (pg Paginator) TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + pg.PageSize - 1) / pg.PageSize
}

// Window returns the items of the given 1-based page. An out-of-range
// page yields an empty window.
func (pg Paginator) Window(items []models.Property, page int) []models.Property {
	if page < 1 || pg.PageSize <= 0 {
		return nil
	}
	start := (page - 1) * pg.PageSize
	if start >= len(items) {
		return nil
	}
	end := start + pg.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Next returns the page after the given one under the paginator's wrap
// policy. totalPages 0 leaves the page unchanged.
func (pg Paginator) Next(page, totalPages int) int {
	if totalPages <= 0 {
		return page
	}
	switch pg.Policy {
	case Wrap:
		return page%totalPages + 1
	default:
		if page >= totalPages {
			return page
		}
		return page + 1
	}
}

// Prev returns the page before the given one under the paginator's wrap
// policy.
func (pg Paginator) Prev(page, totalPages int) int {
	if totalPages <= 0 {
		return page
	}
	switch pg.Policy {
	case Wrap:
		return (page-2+totalPages)%totalPages + 1
	default:
		if page <= 1 {
			return page
		}
		return page - 1
	}
}

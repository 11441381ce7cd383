// Package pagination slices result sets into pages for listing endpoints.
package pagination

const (
	DefaultLimit = 10
	maxLimit     = 100
)

// Meta is the pagination block returned alongside every list response.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// New computes the metadata and skip offset for a page. Page numbers are
// 1-based and clamped to >= 1; out-of-range pages are not an error, they just
// address an empty slice of the result set.
func New(totalItems int64, page, limit int) (Meta, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	skip := (page - 1) * limit

	return Meta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
	}, skip
}

package queryparams

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams carries list filters, sorting and paging from the query string.
type ListParams struct {
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
	Name     string `query:"name"`
	Status   string `query:"status"`
	Category string `query:"category"`
	SortBy   string `query:"sort_by"`
	OrderBy  string `query:"order_by"`
}

// DefaultListParams returns params sorted by sortBy, newest first.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate clamps paging values into range.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset returns the row offset for the current page.
func (p ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta describes the page returned.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult wraps one page of data.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// CalculateTotalPages returns the page count for totalItems.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(perPage)))
}

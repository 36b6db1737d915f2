package params

import (
	"github.com/labstack/echo/v4"

	"tutorhub-api/core/utils"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// QueryParams holds the common list query parameters.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
	SortBy     string
	SortOrder  string
}

// NewQueryParams reads paging/search parameters from the request, applying
// defaults and clamping the page size.
func NewQueryParams(c echo.Context) *QueryParams {
	p := &QueryParams{
		PageNumber: utils.ToNumberWithDefault(c.QueryParam("page_number"), DefaultPageNumber),
		PageSize:   utils.ToNumberWithDefault(c.QueryParam("page_size"), DefaultPageSize),
		Search:     c.QueryParam("search"),
		SortBy:     c.QueryParam("sort_by"),
		SortOrder:  c.QueryParam("sort_order"),
	}

	if p.PageNumber < 1 {
		p.PageNumber = DefaultPageNumber
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}

	return p
}

// Offset returns the SQL offset for the current page.
func (p *QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

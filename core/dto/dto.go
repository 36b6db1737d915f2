package dto

// Pagination is the response-side page wrapper, mirroring entity.Pagination
// but holding response DTOs instead of entities.
type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

package types

// PaginationResponse represents pagination information for list endpoints
// Example: {"total":42,"page":1,"limit":10,"offset":0}
type PaginationResponse struct {
	// Total number of items available across all pages
	Total int `json:"total"`

	// Current page number (1-based)
	Page int `json:"page"`

	// Maximum number of items per page
	Limit int `json:"limit"`

	// Number of items skipped from the beginning of the result set
	Offset int `json:"offset"`
}

// ListResponse defines a generic response structure for listing resources
// Example: {"rows":[{"id":1,"name":"backup"}],"pagination":{"total":1,"page":1,"limit":10,"offset":0}}
type ListResponse[T any] struct {
	// Array of resource items
	Rows []T `json:"rows"`

	// Pagination information for the result set
	Pagination PaginationResponse `json:"pagination"`
}

// ToggleResponse is returned after a schedule was enabled or disabled
// Example: {"id":3,"is_active":false}
type ToggleResponse struct {
	ID       uint `json:"id"`
	IsActive bool `json:"is_active"`
}

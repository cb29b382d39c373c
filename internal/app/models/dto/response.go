package dto

// Pagination is the envelope metadata returned by every list endpoint.
type Pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
}

// MessageResponse represents a standard success message response
type MessageResponse struct {
	Message string `json:"message"`
}

package model

// ErrorResponse is the standardized error payload. Code is a stable,
// machine-readable error code; Message is human-readable.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail describes a field-level validation failure
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

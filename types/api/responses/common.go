package responses

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalogVersion,omitempty"`
}

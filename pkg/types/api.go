package types

// CreateMatchRequest is the payload for POST /admin/matches.
type CreateMatchRequest struct {
	// Home side name.
	// example: Real Madrid
	TeamA string `json:"teamA" example:"Real Madrid"`
	// Away side name.
	// example: Barcelona
	TeamB string `json:"teamB" example:"Barcelona"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: match not found
	Error string `json:"error" example:"match not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Always "ok" when the server is up.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Server time in RFC 3339.
	Timestamp string `json:"timestamp"`
}

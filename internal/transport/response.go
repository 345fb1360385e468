package transport

import "time"

// ValidationErrorResponse is the 400 envelope.
type ValidationErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// StoreErrorResponse is the 500 envelope for persistence failures. Details is
// only filled outside production.
type StoreErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

type UnavailableResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type NotFoundResponse struct {
	Success            bool     `json:"success"`
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
}

type InternalErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates a bad or missing API key
	ErrUnauthorized = errors.New("unauthorized: invalid TMDB API key")
	// ErrRateLimited indicates throttling that persisted past the retry budget
	ErrRateLimited = errors.New("TMDB rate limit exceeded")
)

// APIError represents a TMDB API error response
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Body)
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited checks if the error indicates throttling
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// retryable reports whether the status is worth another attempt.
func retryable(status int) bool {
	return status == 429 || status >= 500
}

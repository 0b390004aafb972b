package tmdb

import (
	"errors"
	"fmt"
	"slices"
)

// Common errors
var (
	// ErrMappingFailed indicates a response body could not be decoded
	ErrMappingFailed = errors.New("failed to map TMDb response")
	// ErrInvalidArgument indicates a blank id, query or out-of-range value
	ErrInvalidArgument = errors.New("invalid argument")
)

// TMDb status codes reported in the status envelope.
const (
	StatusSuccess  = 1
	StatusUpdated  = 12
	StatusDeleted  = 13
	StatusNotFound = 34
)

var (
	successCodes      = []int{StatusSuccess, StatusUpdated, StatusDeleted}
	notFoundCodes     = []int{6, StatusNotFound}
	unauthorizedCodes = []int{3, 7, 10, 14, 17, 30, 31, 32, 33}
)

// APIError represents a TMDb status envelope that reports a failure.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates an unknown resource
func (e *APIError) IsNotFound() bool {
	return slices.Contains(notFoundCodes, e.StatusCode)
}

// IsUnauthorized checks if the error indicates a bad API key or session
func (e *APIError) IsUnauthorized() bool {
	return slices.Contains(unauthorizedCodes, e.StatusCode)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

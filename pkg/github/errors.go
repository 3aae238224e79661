package github

import (
	"errors"
	"fmt"
)

// APIError is an error returned by the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
	// Transient marks rate-limit and network-class failures that a later
	// re-delivery may succeed on. Auth and not-found errors are permanent.
	Transient bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API error %d: %s", e.StatusCode, e.Message)
}

// IsTransient reports whether err is a retriable API failure.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient
	}
	return false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

package review

import "errors"

// Domain-specific errors for the review package.
var (
	ErrEmptySnippet = errors.New("snippet code is empty")
)

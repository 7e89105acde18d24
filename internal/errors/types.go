// Package errors classifies failures from the reminder backend so retry
// policies can tell transient trouble from permanent rejection.
package errors

import "fmt"

// ErrorCategory determines how an error should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff:
	// 5xx responses, timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail immediately without retry:
	// 400 Bad Request, 401 Unauthorized, 403 Forbidden, and similar.
	Irrecoverable
)

// String returns a human-readable representation of the category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError wraps an error with categorization metadata.
type ClassifiedError struct {
	Category   ErrorCategory
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Body       string // Response body, kept for debugging
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}

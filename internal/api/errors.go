package api

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection indicates the backend could not be reached.
	ErrConnection = errors.New("connection error")

	// ErrTimeout indicates a request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")
)

// Error is a failure reported by the backend in a non-2xx response.
type Error struct {
	Status    int
	Message   string
	Method    string
	Path      string
	RequestID string
}

func (e *Error) Error() string {
	return e.Message
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func genericMessage(status int) string {
	return fmt.Sprintf("request failed (HTTP %d)", status)
}

package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNoSession    = errors.New("no stored session")
	ErrUnreachable  = errors.New("backend unreachable")
)

// APIError is returned when the backend answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// Invalid wraps ErrInvalidInput with the name of the offending field.
func Invalid(field string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
}

// Detail returns the backend detail carried by err, or fallback when err
// is not an APIError or carries no detail.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// ConnectivityMessage is shown when the backend cannot be reached.
const ConnectivityMessage = "Failed to connect to backend. Check that the API is running."

// UserMessage turns err into the text shown to the user: the connectivity
// notice for transport failures, the backend detail when present, otherwise
// fallback.
func UserMessage(err error, fallback string) string {
	if errors.Is(err, ErrUnreachable) {
		return ConnectivityMessage
	}
	return Detail(err, fallback)
}

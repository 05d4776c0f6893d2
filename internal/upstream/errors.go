package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkFailure covers rejected, timed out and non-2xx requests
	ErrNetworkFailure = errors.New("upstream request failed")
	// ErrEmptyPayload is a successful response without any record
	ErrEmptyPayload = errors.New("upstream returned no records")
	// ErrMalformedPayload is a body whose top-level shape cannot be decoded
	ErrMalformedPayload = errors.New("upstream returned a malformed payload")
	// ErrMissingMemberID is returned before any request when no member id is given
	ErrMissingMemberID = errors.New("no member identifier provided")
)

// StatusError is a non-2xx response. It matches ErrNetworkFailure with errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream responded %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrNetworkFailure
}

// Message returns the upstream-provided message of err, if any
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

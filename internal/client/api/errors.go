package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes a caller can react to.
// Match them with errors.Is; a caller-initiated cancellation surfaces
// as context.Canceled.
var (
	// ErrNoConnectivity means the device is offline. The request never
	// reached the network and is not retried.
	ErrNoConnectivity = errors.New("no connectivity")

	// ErrTimeout means a single attempt exceeded its deadline. Retryable.
	ErrTimeout = errors.New("request timed out")

	// ErrUnavailable means the transport failed before an HTTP status was
	// received (connection refused, DNS, reset). Retryable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the credentials (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedResponse means the response body was not the expected
	// JSON envelope. Not retried.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is an HTTP-level failure carrying the status code and the
// server-provided envelope message. 5xx and 429 are retried with backoff,
// other 4xx are terminal.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// Retryable reports whether err is transient: timeouts, transport
// failures, HTTP 5xx and HTTP 429.
func Retryable(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return false
}

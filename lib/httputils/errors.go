package httputils

import (
	"errors"
	"net/http"
)

var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// StatusError carries a non-2xx HTTP status. The response body is kept so
// the operator log can show what the upstream actually said.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "request failed, http status: " + e.Status
	}
	return "request failed, http status: " + e.Status + ", response: " + e.Body
}

// IsRetryable reports whether an error is eligible for a retry attempt.
// Transport-level failures (connection resets, timeouts) and the 429/5xx
// statuses are retryable; every other status and programmer errors are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnsupportedMethod) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	// anything else out of http.Client.Do is transport-level
	return true
}

// IsNotFound reports whether an error is an HTTP 404. The weight aggregator
// treats 404 on an address as "never seen on chain", not as a failure.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

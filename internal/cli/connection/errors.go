package connection

import (
	"context"
	"errors"
)

// NotificationTitle is the title of every failure notification.
const NotificationTitle = "API Error"

// SessionExpiredMessage is what the user is told when a 401 ends the session.
const SessionExpiredMessage = "Session expired. Please log in again."

// ErrSessionExpired is returned for any 401 response. The stored session
// has already been cleared when it is returned.
var ErrSessionExpired = errors.New("session expired")

// RequestError is a non-2xx response other than 401, or a request that
// could not be built. StatusCode is 0 in the latter case.
type RequestError struct {
	StatusCode int
	Code       string // optional machine-readable code from the error body
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// TransportError means the HTTP round trip did not complete
// (connection refused, DNS failure, TLS failure, timeout, cancellation).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means a 2xx response body was not the expected JSON.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsSessionExpired reports whether err is (or wraps) ErrSessionExpired.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsAPIError reports whether err came out of a Client request, i.e. was
// already reported through the notifier (cancellations excepted).
func IsAPIError(err error) bool {
	if err == nil {
		return false
	}
	var (
		reqErr *RequestError
		tErr   *TransportError
		decErr *DecodeError
	)
	return errors.Is(err, ErrSessionExpired) ||
		errors.As(err, &reqErr) ||
		errors.As(err, &tErr) ||
		errors.As(err, &decErr)
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	if errors.Is(err, ErrSessionExpired) {
		return 401
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.StatusCode
	}
	return 0
}

// UserMessage is the text shown to the user for err.
func UserMessage(err error) string {
	if errors.Is(err, ErrSessionExpired) {
		return SessionExpiredMessage
	}
	return err.Error()
}

// isCancellation reports aborts that should not surface as notifications.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

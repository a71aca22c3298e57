// ABOUTME: Typed failures surfaced by the request client
// ABOUTME: Distinguishes transport errors, HTTP status errors, and expired sessions

package client

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// ErrSessionExpired is returned when a 401 cannot be recovered from: either
// no refresh token is stored, or the refresh call itself failed.
var ErrSessionExpired = errors.New("session expired, please log in again")

// NetworkError is a transport-level failure; no response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is any non-2xx response that was not absorbed by the 401
// recovery cycle. Body holds the raw response body.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Body) > 0 {
		msg += ": " + truncate(string(e.Body), 200)
	}
	return msg
}

// SessionExpiredError reports that the refresh call failed. It matches
// ErrSessionExpired with errors.Is, and the refresh failure (a *NetworkError
// or *HTTPError from the refresh endpoint) is reachable with errors.As.
type SessionExpiredError struct {
	Cause error
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("session expired: refresh failed: %v", e.Cause)
}

func (e *SessionExpiredError) Unwrap() []error {
	return []error{ErrSessionExpired, e.Cause}
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsStatus reports whether err is an HTTPError with the given status.
func IsStatus(err error, status int) bool {
	return StatusCode(err) == status
}

// isUnauthorized reports whether err is a plain 401 from the backend.
// A 401 wrapped inside a SessionExpiredError does not count.
func isUnauthorized(err error) bool {
	httpErr, ok := err.(*HTTPError)
	return ok && httpErr.StatusCode == http.StatusUnauthorized
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

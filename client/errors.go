package client

import "fmt"

// NetworkError indicates that no HTTP response was received at all
// (timeout, DNS failure, connection refused). It is distinct from
// HTTPError so callers can tell "the server said no" from "the server
// never answered".
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a response received with status >= 400 on an endpoint
// where the status carries no more specific meaning. The body is kept so
// callers can inspect the server's error payload.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// AuthenticationError is a 401 from a credential-submission endpoint
// (login or register): the submitted credentials were rejected. It does
// not indicate an expired session.
type AuthenticationError struct {
	HTTPError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication rejected: %s", e.Body)
}

// SessionExpiredError is a 401 from any other authenticated endpoint:
// the access token is no longer accepted by the backend.
type SessionExpiredError struct {
	HTTPError
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("session expired: %s", e.Body)
}

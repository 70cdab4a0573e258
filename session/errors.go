package session

import "errors"

var (
	// ErrNotAuthenticated is returned when an authenticated operation is
	// attempted without an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAlreadyAuthenticated is returned when login or register is
	// attempted while a session is active.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrNotReady is returned when login or register is attempted before
	// Bootstrap has settled the session.
	ErrNotReady = errors.New("session not bootstrapped")
	// ErrNoRefreshToken is returned by RefreshAccessToken when no refresh
	// token is stored; no network call is made in that case.
	ErrNoRefreshToken = errors.New("no refresh token")
	// ErrClosed is returned after the manager has been shut down.
	ErrClosed = errors.New("session manager closed")
)

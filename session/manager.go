// Package session owns the client-side authentication session lifecycle:
// bootstrap from durable storage, login and register, proactive token
// refresh, and teardown. The Manager is the sole owner of session
// mutation; everything else observes it through snapshots.
package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/jdoyle/centavo/client"
	"github.com/jdoyle/centavo/storage"
)

// Status tells observers whether the bootstrap sequence has finished.
type Status int

const (
	// StatusLoading means bootstrap is still in progress; route guards
	// must defer until the session settles.
	StatusLoading Status = iota
	// StatusReady means bootstrap is complete. Whether the session is
	// authenticated is determined by the presence of a user.
	StatusReady
)

// Snapshot is an immutable view of session state handed to subscribers.
type Snapshot struct {
	Status      Status
	User        *client.User
	AccessToken string
}

// Authenticated reports whether the snapshot carries an active session.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Manager orchestrates the session against the backend API, the token
// store, and the refresh timer. All mutation is serialized through one
// mutex; overlapping refreshes are safe (last writer wins, any failure
// clears the session).
type Manager struct {
	client   *client.Client
	store    storage.TokenStore
	logger   *slog.Logger
	schedule scheduleFunc

	mu            sync.Mutex
	status        Status
	user          *client.User
	token         string
	cancelRefresh func()
	closed        bool

	subMu sync.Mutex
	subs  []func(Snapshot)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. If not set, a default JSON
// logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// withSchedule substitutes the refresh timer implementation in tests.
func withSchedule(fn scheduleFunc) Option {
	return func(m *Manager) {
		m.schedule = fn
	}
}

// NewManager creates a Manager. The session starts in StatusLoading;
// call Bootstrap once at startup to settle it.
func NewManager(c *client.Client, store storage.TokenStore, opts ...Option) *Manager {
	m := &Manager{
		client:   c,
		store:    store,
		status:   StatusLoading,
		schedule: timerSchedule,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return m
}

// Client returns the HTTP adapter the manager signs requests through,
// for callers that need direct API access alongside the session.
func (m *Manager) Client() *client.Client {
	return m.client
}

// Subscribe registers fn to receive every snapshot change. Subscribers
// are called synchronously after each transition, outside the state lock.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.subMu.Lock()
	m.subs = append(m.subs, fn)
	m.subMu.Unlock()
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, User: m.user, AccessToken: m.token}
}

func (m *Manager) notify() {
	snap := m.Snapshot()
	m.subMu.Lock()
	subs := make([]func(Snapshot), len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// Bootstrap reconstructs the session from the token store. It always
// settles to StatusReady, authenticated or not, and never blocks past
// the underlying request timeouts.
func (m *Manager) Bootstrap(ctx context.Context) {
	pair, err := m.store.Tokens()
	if err != nil {
		m.logger.Warn("reading stored tokens", "err", err)
	}
	if pair.Access == "" {
		m.becomeUnauthenticated()
		return
	}

	m.client.SetToken(pair.Access)
	user, err := m.client.Me(ctx)
	if err == nil {
		m.mu.Lock()
		m.user = user
		m.token = pair.Access
		m.status = StatusReady
		// Remaining lifetime of the stored token is unknown; schedule
		// against the assumed default and let the first refresh resync.
		m.scheduleRefreshLocked(defaultExpiresIn)
		m.mu.Unlock()
		m.notify()
		return
	}

	var expired *client.SessionExpiredError
	if errors.As(err, &expired) && pair.Refresh != "" {
		// The adapter has already dropped the stored pair on the 401; the
		// refresh token read before the request is still in hand.
		if rerr := m.refreshWith(ctx, pair.Refresh); rerr == nil {
			user, err = m.client.Me(ctx)
			if err == nil {
				m.mu.Lock()
				m.user = user
				m.status = StatusReady
				m.mu.Unlock()
				m.notify()
				return
			}
			m.logger.Warn("profile fetch after refresh failed", "err", err)
		}
	} else {
		m.logger.Warn("bootstrap profile fetch failed", "err", err)
	}

	m.clearSession()
}

// Login authenticates with the backend and establishes a session. A
// credential rejection propagates unchanged as *client.AuthenticationError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.requireUnauthenticated(); err != nil {
		return err
	}
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.establish(resp)
	return nil
}

// Register creates an account and immediately establishes a session.
// Email verification is a separate later step.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	if err := m.requireUnauthenticated(); err != nil {
		return err
	}
	resp, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	m.establish(resp)
	return nil
}

func (m *Manager) establish(resp *client.AuthResponse) {
	token := resp.AccessToken()
	if err := m.store.WritePair(storage.TokenPair{Access: token, Refresh: resp.RefreshToken}); err != nil {
		m.logger.Warn("persisting tokens", "err", err)
	}
	m.client.SetToken(token)

	user := resp.User
	m.mu.Lock()
	m.user = &user
	m.token = token
	m.status = StatusReady
	m.scheduleRefreshLocked(resp.ExpiresIn)
	m.mu.Unlock()
	m.notify()
}

// Logout tells the backend to invalidate the refresh token, then clears
// local state unconditionally. It never fails: a backend error is logged
// and swallowed.
func (m *Manager) Logout(ctx context.Context) {
	pair, err := m.store.Tokens()
	if err != nil {
		m.logger.Warn("reading stored tokens for logout", "err", err)
	}
	if pair.Refresh != "" {
		if err := m.client.Logout(ctx, pair.Refresh); err != nil {
			m.logger.Warn("backend logout failed", "err", err)
		}
	}
	m.clearSession()
}

// RefreshAccessToken rotates the access token using the persisted
// refresh token. Any failure is terminal for the session: state and
// stored tokens are cleared and the error is returned. There is no
// automatic retry.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}

	pair, err := m.store.Tokens()
	if err != nil {
		m.logger.Warn("reading stored tokens for refresh", "err", err)
	}
	if pair.Refresh == "" {
		m.clearSession()
		return ErrNoRefreshToken
	}
	return m.refreshWith(ctx, pair.Refresh)
}

func (m *Manager) refreshWith(ctx context.Context, refreshToken string) error {
	resp, err := m.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		m.clearSession()
		return err
	}

	if werr := m.store.WritePair(storage.TokenPair{Access: resp.AccessToken, Refresh: refreshToken}); werr != nil {
		m.logger.Warn("persisting rotated tokens", "err", werr)
	}
	m.client.SetToken(resp.AccessToken)

	m.mu.Lock()
	m.token = resp.AccessToken
	m.scheduleRefreshLocked(resp.ExpiresIn)
	m.mu.Unlock()
	m.notify()
	return nil
}

// UpdateProfile replaces the profile with the server's response. The
// server is the source of truth; there is no client-side merge.
func (m *Manager) UpdateProfile(ctx context.Context, patch client.ProfilePatch) error {
	if err := m.requireAuthenticated(); err != nil {
		return err
	}
	user, err := m.client.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	m.replaceUser(user)
	return nil
}

// UpdateTargets replaces the budget targets with the server's response.
func (m *Manager) UpdateTargets(ctx context.Context, patch client.TargetsPatch) error {
	if err := m.requireAuthenticated(); err != nil {
		return err
	}
	user, err := m.client.UpdateTargets(ctx, patch)
	if err != nil {
		return err
	}
	m.replaceUser(user)
	return nil
}

// Close cancels the pending refresh timer and stops the manager. Local
// state is left as is; call Logout first to clear it.
func (m *Manager) Close() {
	m.mu.Lock()
	m.cancelRefreshLocked()
	m.closed = true
	m.mu.Unlock()
}

func (m *Manager) replaceUser(user *client.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) requireAuthenticated() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.user == nil {
		return ErrNotAuthenticated
	}
	return nil
}

func (m *Manager) requireUnauthenticated() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.status != StatusReady {
		return ErrNotReady
	}
	if m.user != nil {
		return ErrAlreadyAuthenticated
	}
	return nil
}

// clearSession drops every trace of the session: timer, stored tokens,
// adapter token, and in-memory state. The session settles to ready and
// unauthenticated.
func (m *Manager) clearSession() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing token store", "err", err)
	}
	m.client.SetToken("")

	m.mu.Lock()
	m.cancelRefreshLocked()
	m.user = nil
	m.token = ""
	m.status = StatusReady
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) becomeUnauthenticated() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.status = StatusReady
	m.mu.Unlock()
	m.notify()
}

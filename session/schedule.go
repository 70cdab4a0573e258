package session

import (
	"context"
	"time"

	"github.com/jdoyle/centavo/client"
)

const (
	// refreshLead is how long before the declared expiry a refresh runs.
	refreshLead = 60 * time.Second
	// minRefreshDelay floors the schedule against pathologically short
	// token lifetimes.
	minRefreshDelay = 30 * time.Second
	// defaultExpiresIn is assumed when the server did not declare an
	// expiry, which happens on the bootstrap profile-fetch path where the
	// stored token's remaining lifetime is unknown.
	defaultExpiresIn = 900
)

// refreshDelay converts a server-declared expiresIn (seconds) into the
// delay before the proactive refresh fires: one minute before expiry,
// but never sooner than 30 seconds from now.
func refreshDelay(expiresIn int64) time.Duration {
	d := time.Duration(expiresIn)*time.Second - refreshLead
	if d < minRefreshDelay {
		d = minRefreshDelay
	}
	return d
}

// scheduleFunc starts a one-shot task after the delay and returns a
// cancel function. It exists so tests can substitute a fake scheduler.
type scheduleFunc func(d time.Duration, task func()) (cancel func())

func timerSchedule(d time.Duration, task func()) func() {
	t := time.AfterFunc(d, task)
	return func() { t.Stop() }
}

// scheduleRefreshLocked arms the proactive refresh timer, cancelling any
// previously pending one first. At most one timer is outstanding per
// session, and none after Close: a refresh that was in flight when the
// manager shut down must not re-arm the timer. Callers must hold m.mu.
func (m *Manager) scheduleRefreshLocked(expiresIn int64) {
	m.cancelRefreshLocked()
	if m.closed {
		return
	}
	m.cancelRefresh = m.schedule(refreshDelay(expiresIn), m.onRefreshTimer)
}

// cancelRefreshLocked stops a pending refresh timer, if any. Callers
// must hold m.mu.
func (m *Manager) cancelRefreshLocked() {
	if m.cancelRefresh != nil {
		m.cancelRefresh()
		m.cancelRefresh = nil
	}
}

// onRefreshTimer is the timer callback. A refresh failure here has
// already torn the session down; it is logged and never escalates.
func (m *Manager) onRefreshTimer() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*client.DefaultTimeout)
	defer cancel()
	if err := m.RefreshAccessToken(ctx); err != nil {
		m.logger.Warn("scheduled token refresh failed", "err", err)
	}
}

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdoyle/centavo/client"
	"github.com/jdoyle/centavo/storage"
	"github.com/jdoyle/centavo/storage/memory"
)

func TestRefreshDelay(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		want      time.Duration
	}{
		{"typical lifetime", 600, 540 * time.Second},
		{"floor applies", 10, 30 * time.Second},
		{"exactly at floor", 90, 30 * time.Second},
		{"just above floor", 91, 31 * time.Second},
		{"zero lifetime", 0, 30 * time.Second},
		{"one hour", 3600, 3540 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refreshDelay(tt.expiresIn))
		})
	}
}

// fakeScheduler tracks how many scheduled tasks are outstanding and
// captures them so tests can fire the timer by hand.
type fakeScheduler struct {
	scheduled int
	cancelled int
	delays    []time.Duration
	tasks     []func()
}

func (f *fakeScheduler) schedule(d time.Duration, task func()) func() {
	f.scheduled++
	f.delays = append(f.delays, d)
	f.tasks = append(f.tasks, task)
	return func() { f.cancelled++ }
}

func (f *fakeScheduler) pending() int {
	return f.scheduled - f.cancelled
}

func TestAtMostOnePendingRefreshTimer(t *testing.T) {
	fake := &fakeScheduler{}
	m := NewManager(client.New("http://localhost:0"), memory.NewStore(), withSchedule(fake.schedule))

	m.mu.Lock()
	for i := 0; i < 5; i++ {
		m.scheduleRefreshLocked(600)
	}
	m.mu.Unlock()

	assert.Equal(t, 5, fake.scheduled)
	assert.Equal(t, 1, fake.pending(), "rescheduling must cancel the previous timer")
}

func TestCloseCancelsPendingTimer(t *testing.T) {
	fake := &fakeScheduler{}
	m := NewManager(client.New("http://localhost:0"), memory.NewStore(), withSchedule(fake.schedule))

	m.mu.Lock()
	m.scheduleRefreshLocked(600)
	m.mu.Unlock()

	m.Close()
	assert.Equal(t, 0, fake.pending(), "teardown must not leave a dangling timer")
}

func TestScheduleAfterCloseDoesNotArm(t *testing.T) {
	fake := &fakeScheduler{}
	m := NewManager(client.New("http://localhost:0"), memory.NewStore(), withSchedule(fake.schedule))
	m.Close()

	// A refresh that was in flight when Close ran reaches this call after
	// teardown; it must not leave a live timer behind.
	m.mu.Lock()
	m.scheduleRefreshLocked(600)
	m.mu.Unlock()

	assert.Equal(t, 0, fake.scheduled)
	assert.Equal(t, 0, fake.pending())
}

func TestRefreshTimerFailureClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid refresh token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := memory.NewStore()
	require.NoError(t, store.WritePair(storage.TokenPair{Access: "acc", Refresh: "ref"}))

	fake := &fakeScheduler{}
	m := NewManager(client.New(srv.URL, client.WithTokenStore(store)), store, withSchedule(fake.schedule))
	t.Cleanup(m.Close)

	m.mu.Lock()
	m.scheduleRefreshLocked(600)
	m.mu.Unlock()
	require.Len(t, fake.tasks, 1)

	// Fire the timer: the backend rejects the refresh, so the session
	// must tear down without panicking or rescheduling.
	fake.tasks[0]()

	snap := m.Snapshot()
	assert.Equal(t, StatusReady, snap.Status)
	assert.False(t, snap.Authenticated())
	assert.Empty(t, snap.AccessToken)

	pair, err := store.Tokens()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
	assert.Equal(t, 0, fake.pending())
}

func TestScheduledDelayUsesDeclaredExpiry(t *testing.T) {
	fake := &fakeScheduler{}
	m := NewManager(client.New("http://localhost:0"), memory.NewStore(), withSchedule(fake.schedule))

	m.mu.Lock()
	m.scheduleRefreshLocked(600)
	m.scheduleRefreshLocked(10)
	m.mu.Unlock()

	assert.Equal(t, []time.Duration{540 * time.Second, 30 * time.Second}, fake.delays)
}

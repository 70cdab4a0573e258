package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdoyle/centavo/client"
)

func TestGuardRedirect(t *testing.T) {
	g := Guard{AuthenticatedEntry: "/home", PublicEntry: "/login"}
	user := &client.User{ID: "u1"}

	tests := []struct {
		name     string
		snap     Snapshot
		loc      Location
		want     string
		redirect bool
	}{
		{
			name: "loading defers regardless of location",
			snap: Snapshot{Status: StatusLoading},
			loc:  Location{Path: "/home", Area: AreaAuthenticated},
		},
		{
			name: "loading defers even with user present",
			snap: Snapshot{Status: StatusLoading, User: user},
			loc:  Location{Path: "/login", Area: AreaPublic},
		},
		{
			name:     "unauthenticated on protected screen",
			snap:     Snapshot{Status: StatusReady},
			loc:      Location{Path: "/home", Area: AreaAuthenticated},
			want:     "/login",
			redirect: true,
		},
		{
			name: "unauthenticated on public screen stays",
			snap: Snapshot{Status: StatusReady},
			loc:  Location{Path: "/login", Area: AreaPublic},
		},
		{
			name:     "authenticated on public screen",
			snap:     Snapshot{Status: StatusReady, User: user},
			loc:      Location{Path: "/login", Area: AreaPublic},
			want:     "/home",
			redirect: true,
		},
		{
			name: "authenticated on protected screen stays",
			snap: Snapshot{Status: StatusReady, User: user},
			loc:  Location{Path: "/stats", Area: AreaAuthenticated},
		},
		{
			name: "redirect target already active is a no-op",
			snap: Snapshot{Status: StatusReady, User: user},
			loc:  Location{Path: "/home", Area: AreaPublic},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Redirect(tt.snap, tt.loc)
			assert.Equal(t, tt.redirect, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardSingleRedirectPerTransition(t *testing.T) {
	g := Guard{AuthenticatedEntry: "/home", PublicEntry: "/login"}

	// A redirect followed by re-evaluating at the target must settle:
	// no chains.
	snap := Snapshot{Status: StatusReady}
	target, ok := g.Redirect(snap, Location{Path: "/home", Area: AreaAuthenticated})
	assert.True(t, ok)

	_, again := g.Redirect(snap, Location{Path: target, Area: AreaPublic})
	assert.False(t, again, "guard must be idempotent at its own target")
}

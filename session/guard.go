package session

// Area classifies navigation locations into the authenticated and public
// groups of the app.
type Area int

const (
	// AreaPublic holds the screens reachable without a session (login,
	// register, password reset).
	AreaPublic Area = iota
	// AreaAuthenticated holds the screens that require a session.
	AreaAuthenticated
)

// Location is the current navigation position as seen by the guard.
type Location struct {
	Path string
	Area Area
}

// Guard keeps the navigation location consistent with session state: no
// protected screen without a session, no login screen with one.
type Guard struct {
	// AuthenticatedEntry is the path entered after authentication.
	AuthenticatedEntry string
	// PublicEntry is the path entered after the session ends.
	PublicEntry string
}

// Redirect returns the path to navigate to, if any. It is a pure
// reaction: while bootstrap is loading it defers, redirecting to the
// current path is suppressed, and at most one redirect is produced per
// call, so no redirect chains can form.
func (g Guard) Redirect(snap Snapshot, loc Location) (string, bool) {
	if snap.Status == StatusLoading {
		return "", false
	}
	switch {
	case !snap.Authenticated() && loc.Area == AreaAuthenticated:
		if loc.Path == g.PublicEntry {
			return "", false
		}
		return g.PublicEntry, true
	case snap.Authenticated() && loc.Area == AreaPublic:
		if loc.Path == g.AuthenticatedEntry {
			return "", false
		}
		return g.AuthenticatedEntry, true
	}
	return "", false
}

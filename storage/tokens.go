// Package storage provides the persistence abstraction for session tokens.
package storage

// TokenPair holds the two credentials of a session. Either slot may be
// empty when the corresponding token has not been issued.
type TokenPair struct {
	Access  string
	Refresh string
}

// Empty reports whether neither token is present.
func (p TokenPair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// TokenStore abstracts token persistence so that sessions can survive
// process restarts (bbolt) or live only in memory (memguard-backed).
//
// Implementations return errors only for storage failures; an absent
// token is reported as an empty slot, not an error. Callers treat
// storage failures as degradation to the unauthenticated state, never
// as fatal.
type TokenStore interface {
	// Tokens returns the stored pair. Slots that were never written are
	// empty strings.
	Tokens() (TokenPair, error)
	// WritePair stores both tokens together. Callers must not assume a
	// failed write left the previous pair intact.
	WritePair(pair TokenPair) error
	// Clear removes both tokens.
	Clear() error
}

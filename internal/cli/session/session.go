package session

import "errors"

// Fixed storage keys for the session pair.
const (
	KeyToken       = "authToken"
	KeyDisplayName = "userName"
)

var (
	// ErrNoSession is returned by Get when no token is stored.
	ErrNoSession = errors.New("session: no active session")

	// ErrInvalidSession is returned by Set when the session has no token.
	ErrInvalidSession = errors.New("session: token is required")

	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("session: store closed")
)

// Session is the persisted login state.
type Session struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// Store persists at most one session.
//
// Implementations must treat the token and display name as one value:
// Set writes both, Clear removes both.
type Store interface {
	// Get returns the current session or ErrNoSession.
	Get() (Session, error)
	// Set replaces the current session.
	Set(s Session) error
	// Clear removes the current session. Clearing an empty store is not an error.
	Clear() error
}

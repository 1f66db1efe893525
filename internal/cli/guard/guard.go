package guard

import (
	"errors"

	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/cli/notify"
)

// LoginRoute is where unauthenticated users are sent.
const LoginRoute = "/login"

// Notification text shown when a protected action is attempted without a session.
const (
	AuthRequiredTitle   = "Authentication Required"
	AuthRequiredMessage = "Please log in to access this page"
)

// ErrAuthRequired is returned by RequireAuth when no session exists.
var ErrAuthRequired = errors.New("authentication required")

// Authenticator reports whether a session exists. *connection.Client
// satisfies it.
type Authenticator interface {
	IsAuthenticated() bool
}

// Redirector performs navigation to route.
type Redirector func(route string)

// Guard protects actions that need an authenticated session.
type Guard struct {
	auth     Authenticator
	notifier notify.Notifier
	redirect Redirector
}

// New creates a Guard. A nil notifier or redirector is a no-op.
func New(auth Authenticator, notifier notify.Notifier, redirect Redirector) *Guard {
	if notifier == nil {
		notifier = notify.Discard
	}
	if redirect == nil {
		redirect = func(string) {}
	}
	return &Guard{auth: auth, notifier: notifier, redirect: redirect}
}

// RequireAuth fails with ErrAuthRequired, after notifying and redirecting,
// when there is no session.
func (g *Guard) RequireAuth() error {
	if g.auth.IsAuthenticated() {
		return nil
	}
	g.notifier.Notify(notify.Error(AuthRequiredTitle, AuthRequiredMessage))
	g.redirect(LoginRoute)
	return ErrAuthRequired
}

// Check redirects to the login route when err is a session expiry and
// returns err unchanged. The client has already notified the user.
func (g *Guard) Check(err error) error {
	if connection.IsSessionExpired(err) {
		g.redirect(LoginRoute)
	}
	return err
}

// Run executes fn behind RequireAuth and passes its error through Check.
func (g *Guard) Run(fn func() error) error {
	if err := g.RequireAuth(); err != nil {
		return err
	}
	return g.Check(fn())
}

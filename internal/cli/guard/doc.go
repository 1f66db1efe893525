// Package guard decides what happens when a command needs a session it
// does not have: the user is told and sent to the login route.
//
// The HTTP client only reports and returns ErrSessionExpired; the guard
// is the one place that turns it into a redirect.
package guard

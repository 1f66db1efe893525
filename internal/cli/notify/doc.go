// Package notify delivers user-facing notifications for examprep-cli.
//
// The HTTP layer reports failures through a Notifier it is given rather
// than printing them itself. The command layer decides where they go:
// a terminal writer, the structured log, a Broker that other parts of
// the UI subscribe to, or several of those at once via Multi.
package notify

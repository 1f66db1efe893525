// Package command provides the CLI command definitions for examprep-cli.
//
// Commands are built with urfave/cli/v2:
//
//   - root.go: application, global flags, output selection
//   - runtime.go: configuration, session store, API client and notifications
//   - auth.go: login, register, logout and status
//   - exam.go: exam catalogue
//   - statistics.go: performance statistics
//   - notifications.go: recent notifications
//   - config.go: configuration management
//   - repl.go: interactive shell
//
// Commands parse flags, call a service from internal/core/service and
// render the result with internal/cli/output. API failures are shown to
// the user as notifications by the client; Reported tells the caller
// not to print them a second time.
package command

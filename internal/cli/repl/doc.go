// Package repl runs examprep-cli commands interactively.
//
//   - repl.go: the read-eval-print loop and its built-ins
//   - args.go: shell-like splitting of input lines
//   - completer.go: command completion
//   - history.go: persistent history (~/.examprep/history)
//
// The loop does not know the command tree; it hands every line to an
// Executor supplied by the command package.
package repl

// Package logger provides structured logging for examprep-cli.
//
//   - logger.go: log/slog based Logger, level control, default instance
//   - context.go: context propagation of the logger and request IDs
//   - redact.go: masking of credentials before they reach a handler
//
// The CLI logs to stderr in text format at warn level unless --verbose
// or the log section of the config file says otherwise.
package logger

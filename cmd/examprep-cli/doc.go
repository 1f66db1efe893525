// Package main provides the entry point for examprep-cli.
//
// The CLI gives command-line access to the exam practice API:
//
//   - Account access (login, register, logout, status)
//   - Exam catalogue browsing with search and filters
//   - Performance statistics
//   - Configuration management
//
// Usage:
//
//	examprep-cli [command] [flags]
//	examprep-cli login --email me@example.com
//	examprep-cli exams list --difficulty easy -o json
//
// The CLI supports both single-command mode and interactive REPL mode.
package main

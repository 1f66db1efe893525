// Package session provides the locally persisted login session for examprep-cli.
//
// A session is the pair of values that answers "am I logged in, and as
// whom": the bearer token and the display name. The pair is stored under
// two fixed keys and is always written and cleared together.
//
//   - session.go: Session model and the Store interface
//   - memory.go: in-process store (tests, ephemeral REPL sessions)
//   - badger.go: on-disk store backed by Badger
//   - token.go: unverified JWT claim inspection
package session

// Package output renders command results as tables, JSON or YAML, and
// shows a spinner while a request is in flight.
//
// Values that know how to lay themselves out as tables implement
// Tabular; the JSON and YAML formatters encode the value itself.
package output

// Package tracer provides request tracing for examprep-cli.
//
// Spans are built with OpenTelemetry and written as JSON to a rotating
// file, so a slow or failing command can be inspected after the fact.
// Without a file the provider hands out a no-op tracer.
package tracer

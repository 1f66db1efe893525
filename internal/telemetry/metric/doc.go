// Package metric provides Prometheus metrics for examprep-cli.
//
// A CLI process is short-lived, so nothing is scraped. Instead the
// registry is written once at exit to a file picked up by the node
// exporter textfile collector (metrics.textfile in the config).
//
// Metrics:
//
//   - examprep_client_requests_total{code,method}
//   - examprep_client_request_duration_seconds{method}
//   - examprep_client_session_expired_total
//   - examprep_client_notifications_total{variant}
package metric

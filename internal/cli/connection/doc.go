// Package connection is the HTTP client for the exam platform API.
//
//   - client.go: Client, request building, response normalization
//   - auth.go: login, register, logout, authentication check
//   - errors.go: failure taxonomy (session expired, request failed,
//     transport failure, decode failure)
//   - transport.go: request IDs and per-request logging
//
// Every call attaches "Authorization: Bearer <token>" from the injected
// session store unless the call opts out. A 401 from any endpoint clears
// the stored session and fails with ErrSessionExpired; deciding what the
// user sees next (the login prompt) is left to the caller. Failures are
// reported once through the injected notifier and then returned.
package connection

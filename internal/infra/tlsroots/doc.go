// Package tlsroots builds the trust store for HTTPS API connections:
// the system roots plus an optional private CA bundle (api.cafile),
// for deployments that front the exam API with an internal CA.
package tlsroots

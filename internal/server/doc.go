// Package server runs the HTTP transport of the application.
//
// It owns the listener lifecycle: startup, cancellation through a context
// (usually bound to SIGTERM/SIGINT by the caller) and graceful shutdown
// bounded by the configured shutdown timeout.
package server

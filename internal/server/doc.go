// Package server runs the sync server's HTTP transport.
//
// It owns the listener lifecycle: startup, stop-signal handling and a
// bounded graceful shutdown that lets in-flight transfers finish.
package server

// Package transport defines the handler interfaces and middleware chain for
// the relay HTTP transport layer.
//
// The HTTP adapter (pkg/transport/http) reads an inbound request into an
// Exchange and hands it to a Gateway. The gateway translates the body into
// the target format, sends it upstream and relays the reply through a
// ResponseWriter, which hides whether the reply is a single JSON document
// or a stream that must be flushed as it arrives.
//
// # Middleware
//
// The middleware chain wraps the Forwarder with cross-cutting concerns.
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID), and structured logging via log/slog.
package transport

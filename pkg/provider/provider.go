package provider

import (
	"context"
	"io"
)

// Backend abstracts an upstream inference provider that accepts an already
// translated request body. Translation happens before the backend is
// called (see pkg/translator); the backend only moves bytes.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Backend interface {
	// Name returns the provider identifier (e.g., "kiro").
	Name() string

	// Send posts a translated request body upstream. On success the caller
	// owns Reply.Body and must close it. Non-2xx upstream statuses are
	// returned as errors, never as a Reply.
	Send(ctx context.Context, body []byte, stream bool) (*Reply, error)

	// Close releases provider resources (HTTP clients, connections).
	Close() error
}

// Reply is a successful upstream response, relayed to the client as is.
type Reply struct {
	// StatusCode is the upstream HTTP status (always 2xx).
	StatusCode int

	// ContentType is the upstream Content-Type header.
	ContentType string

	// Body streams the upstream response body.
	Body io.ReadCloser
}

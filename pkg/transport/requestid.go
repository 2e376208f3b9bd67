package transport

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MaxRequestIDLength bounds client-supplied request IDs. Longer IDs are
// replaced rather than truncated.
const MaxRequestIDLength = 128

type requestIDKey struct{}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns middleware that assigns a unique request ID to each
// exchange. If the context already carries one (set by the HTTP adapter
// from the X-Request-ID header), that value is kept.
func RequestID() Middleware {
	return func(next Forwarder) Forwarder {
		return ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
			if RequestIDFromContext(ctx) == "" {
				ctx = ContextWithRequestID(ctx, NewRequestID())
			}
			return next.Forward(ctx, ex, w)
		})
	}
}

// NewRequestID returns a random request ID of 32 hex characters.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidRequestID returns the trimmed client-supplied id, or "" when it is
// empty, longer than MaxRequestIDLength, or holds anything other than
// printable ASCII. Request IDs are echoed in headers and logs, so control
// characters must not pass through.
func ValidRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRequestIDLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return ""
		}
	}
	return id
}

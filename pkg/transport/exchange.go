package transport

import (
	"context"
	"encoding/json"

	"github.com/rhuss/relay/pkg/translator"
)

// Exchange is one inbound request on its way upstream. Source and Target
// may be left empty to use the gateway's configured formats.
type Exchange struct {
	Source translator.Format
	Target translator.Format

	// Model is the model named in the request body, possibly empty.
	Model string

	// Stream reports whether the client asked for a streaming reply.
	Stream bool

	// Body is the raw request body in the source format.
	Body json.RawMessage
}

// Forwarder translates an exchange, sends it upstream and relays the reply
// to w.
type Forwarder interface {
	Forward(ctx context.Context, ex *Exchange, w ResponseWriter) error
}

// ForwarderFunc is an adapter that allows using an ordinary function
// as a Forwarder.
type ForwarderFunc func(ctx context.Context, ex *Exchange, w ResponseWriter) error

// Forward calls f(ctx, ex, w).
func (f ForwarderFunc) Forward(ctx context.Context, ex *Exchange, w ResponseWriter) error {
	return f(ctx, ex, w)
}

// Translator returns the payload an exchange would be sent upstream as,
// without sending it.
type Translator interface {
	Translate(ctx context.Context, ex *Exchange) (any, error)
}

// Gateway is everything the HTTP adapter dispatches to.
type Gateway interface {
	Forwarder
	Translator

	// Pairs lists the translations the gateway can perform.
	Pairs() []translator.Pair
}

// ResponseWriter carries the upstream reply back to the client.
//
// WriteHeader must be called exactly once, before any Write. Write copies
// reply bytes verbatim; Flush pushes buffered bytes to the client and
// returns an error if the client has gone away.
type ResponseWriter interface {
	WriteHeader(status int, contentType string) error
	Write(p []byte) (int, error)
	Flush() error
}

package translator

import (
	"context"
	"encoding/json"
)

// Format names a request wire format.
type Format string

const (
	// FormatOpenAI is the OpenAI Chat Completions request body.
	FormatOpenAI Format = "openai"

	// FormatKiro is the Kiro conversationState envelope.
	FormatKiro Format = "kiro"
)

// Credentials carries the per-account values a translator may embed in the
// target request. Only ProfileARN is read today.
type Credentials struct {
	ProfileARN string
}

// Request is the input handed to a RequestFunc.
type Request struct {
	// Model is the resolved target model id.
	Model string

	// Body is the undecoded source request.
	Body json.RawMessage

	// Stream reports whether the client asked for a streaming reply.
	Stream bool

	Credentials Credentials
}

// RequestFunc converts a source request into a target payload ready to be
// marshaled as JSON.
type RequestFunc func(ctx context.Context, req *Request) (any, error)

// ResponseFunc converts an upstream reply body back into the source format.
// It is nil for pairs whose replies are relayed verbatim.
type ResponseFunc func(ctx context.Context, model string, body []byte) ([]byte, error)

package translator

import "context"

// WarningKind classifies a translation warning.
type WarningKind string

const (
	// WarningSystemPrompt: the combined system prompt is over its limit.
	WarningSystemPrompt WarningKind = "system_prompt"

	// WarningContent: the assembled current-turn content is over its limit.
	WarningContent WarningKind = "content"
)

// Warning describes a non-fatal condition found during translation. Size and
// Limit are measured in UTF-16 code units, so a character outside the Basic
// Multilingual Plane such as an emoji counts as two.
type Warning struct {
	Kind  WarningKind
	Size  int
	Limit int
	Model string
}

// Sink receives translation warnings.
type Sink interface {
	Warn(ctx context.Context, w Warning)
}

// NopSink discards every warning.
type NopSink struct{}

// Warn implements Sink.
func (NopSink) Warn(context.Context, Warning) {}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, w Warning)

// Warn calls f(ctx, w).
func (f SinkFunc) Warn(ctx context.Context, w Warning) {
	f(ctx, w)
}

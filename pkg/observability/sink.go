package observability

import (
	"context"
	"log/slog"

	"github.com/rhuss/relay/pkg/translator"
)

// WarningSink logs translation warnings and counts them in
// relay_translation_warnings_total.
type WarningSink struct {
	// Logger receives the warnings. Nil means slog.Default().
	Logger *slog.Logger
}

var _ translator.Sink = (*WarningSink)(nil)

// Warn implements translator.Sink.
func (s *WarningSink) Warn(ctx context.Context, w translator.Warning) {
	TranslationWarningsTotal.WithLabelValues(string(w.Kind)).Inc()

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var msg string
	switch w.Kind {
	case translator.WarningSystemPrompt:
		msg = "system prompt exceeds recommended size"
	case translator.WarningContent:
		msg = "current message exceeds recommended size"
	default:
		msg = "translation warning"
	}

	logger.WarnContext(ctx, msg,
		"kind", string(w.Kind),
		"chars", w.Size,
		"limit", w.Limit,
		"model", w.Model,
	)
}

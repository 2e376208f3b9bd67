package openaikiro

import (
	"context"
	"strings"
	"unicode/utf16"

	"github.com/rhuss/relay/pkg/translator"
)

// timestampLayout is RFC 3339 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// assemble prefixes the current turn with the timestamp marker and the
// system prompt, and reports oversized prompts to the sink.
func (t *Translator) assemble(ctx context.Context, cur UserTurn, systemPrompt, model string) UserTurn {
	var b strings.Builder
	b.WriteString("[Context: Current time is ")
	b.WriteString(t.cfg.Now().UTC().Format(timestampLayout))
	b.WriteString("]\n\n")
	if systemPrompt != "" {
		b.WriteString("[System: ")
		b.WriteString(systemPrompt)
		b.WriteString("]\n\n")
	}
	b.WriteString(cur.Content)
	content := b.String()

	if n := utf16Len(systemPrompt); n > t.cfg.SystemPromptWarnChars {
		t.cfg.Sink.Warn(ctx, translator.Warning{
			Kind:  translator.WarningSystemPrompt,
			Size:  n,
			Limit: t.cfg.SystemPromptWarnChars,
			Model: model,
		})
	}
	if n := utf16Len(content); n > t.cfg.ContentWarnChars {
		t.cfg.Sink.Warn(ctx, translator.Warning{
			Kind:  translator.WarningContent,
			Size:  n,
			Limit: t.cfg.ContentWarnChars,
			Model: model,
		})
	}

	return UserTurn{Content: content, ModelID: model, Context: cur.Context}
}

// utf16Len returns the length of s in UTF-16 code units. Characters outside
// the Basic Multilingual Plane count twice.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

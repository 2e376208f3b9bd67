package openaikiro

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/provider/kiro"
	"github.com/rhuss/relay/pkg/provider/openaicompat"
	"github.com/rhuss/relay/pkg/translator"
)

// Defaults applied by Config when a field is left zero.
const (
	DefaultMaxTokens             = 32000
	DefaultSystemPromptWarnChars = 10000
	DefaultContentWarnChars      = 20000
)

// Config holds the translator's tunables and injected collaborators.
// Zero values are replaced with defaults by New.
type Config struct {
	// Sink receives oversize warnings. Defaults to translator.NopSink.
	Sink translator.Sink

	// Now returns the time embedded in the current turn. Defaults to time.Now.
	Now func() time.Time

	// NewConversationID and NewToolUseID generate identifiers. They default
	// to random UUIDs from pkg/api.
	NewConversationID func() string
	NewToolUseID      func() string

	// DefaultMaxTokens is sent when the caller gives no positive max_tokens.
	DefaultMaxTokens int

	// Warning thresholds, in characters.
	SystemPromptWarnChars int
	ContentWarnChars      int
}

func (c Config) withDefaults() Config {
	if c.Sink == nil {
		c.Sink = translator.NopSink{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewConversationID == nil {
		c.NewConversationID = api.NewConversationID
	}
	if c.NewToolUseID == nil {
		c.NewToolUseID = api.NewToolUseID
	}
	if c.DefaultMaxTokens <= 0 {
		c.DefaultMaxTokens = DefaultMaxTokens
	}
	if c.SystemPromptWarnChars <= 0 {
		c.SystemPromptWarnChars = DefaultSystemPromptWarnChars
	}
	if c.ContentWarnChars <= 0 {
		c.ContentWarnChars = DefaultContentWarnChars
	}
	return c
}

// Translator converts chat-completions requests into Kiro payloads. It
// holds no per-request state and is safe for concurrent use.
type Translator struct {
	cfg Config
}

// New creates a Translator.
func New(cfg Config) *Translator {
	return &Translator{cfg: cfg.withDefaults()}
}

// Register adds the openai -> kiro entry to the registry. Replies are
// relayed verbatim, so no response function is registered.
func (t *Translator) Register(r *translator.Registry) error {
	return r.Register(translator.FormatOpenAI, translator.FormatKiro, t.TranslateRequest, nil)
}

// TranslateRequest decodes req.Body as a chat-completions request and
// translates it. It satisfies translator.RequestFunc.
func (t *Translator) TranslateRequest(ctx context.Context, req *translator.Request) (any, error) {
	var chat openaicompat.ChatCompletionRequest
	if err := json.Unmarshal(req.Body, &chat); err != nil {
		return nil, fmt.Errorf("decode chat completion request: %w", err)
	}
	return t.Translate(ctx, req.Model, &chat, req.Credentials)
}

// Translate builds the Kiro payload for req. model is the target model id;
// when empty, req.Model is used.
func (t *Translator) Translate(ctx context.Context, model string, req *openaicompat.ChatCompletionRequest, creds translator.Credentials) (*kiro.Payload, error) {
	if model == "" {
		model = req.Model
	}

	b := newHistoryBuilder(model, convertTools(req.Tools), t.cfg.NewToolUseID)
	h, err := b.build(req.Messages)
	if err != nil {
		return nil, err
	}

	current, rest, err := extractCurrent(h)
	if err != nil {
		return nil, err
	}

	hist := sanitizeHistory(rest, model)
	current = t.assemble(ctx, current, h.SystemPrompt, model)

	p := t.buildPayload(current, hist, model, creds.ProfileARN, inference{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	})

	debug.Log("translator", "translated request",
		"model", model,
		"messages", len(req.Messages),
		"history", len(p.ConversationState.History),
		"tools", len(req.Tools),
		"undelivered_results", h.Undelivered,
	)
	debug.JSON("translator", "kiro payload", p)

	return p, nil
}

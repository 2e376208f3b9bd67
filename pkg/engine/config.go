package engine

import "github.com/rhuss/relay/pkg/translator"

// Config holds configuration for the engine.
type Config struct {
	// SourceFormat and TargetFormat are used when an exchange does not
	// name its own. Zero values default to openai -> kiro.
	SourceFormat translator.Format
	TargetFormat translator.Format

	// DefaultModel is used when the request omits the model field.
	// Empty string means a model is always required in the request.
	DefaultModel string

	// ModelAliases maps client-facing model names to upstream model ids.
	ModelAliases map[string]string

	// Credentials are handed to every translation.
	Credentials translator.Credentials
}

func (c Config) source() translator.Format {
	if c.SourceFormat == "" {
		return translator.FormatOpenAI
	}
	return c.SourceFormat
}

func (c Config) target() translator.Format {
	if c.TargetFormat == "" {
		return translator.FormatKiro
	}
	return c.TargetFormat
}

// resolveModel returns the upstream model id for a requested model name.
// The default model applies when none is requested; aliases apply to both.
func (c Config) resolveModel(requested string) string {
	model := requested
	if model == "" {
		model = c.DefaultModel
	}
	if alias, ok := c.ModelAliases[model]; ok && alias != "" {
		return alias
	}
	return model
}

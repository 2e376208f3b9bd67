package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// upstream.type must be a known value.
	switch c.Upstream.Type {
	case "kiro":
		if c.Upstream.BaseURL == "" {
			errs = append(errs, fmt.Errorf("upstream.base_url is required when upstream.type is \"kiro\""))
		}
	case "none":
		// translate-only
	default:
		errs = append(errs, fmt.Errorf("upstream.type must be \"kiro\" or \"none\", got %q", c.Upstream.Type))
	}

	if c.Upstream.Timeout < 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout must be >= 0, got %v", c.Upstream.Timeout))
	}

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	if c.Engine.SourceFormat == "" || c.Engine.TargetFormat == "" {
		errs = append(errs, fmt.Errorf("engine.source_format and engine.target_format must not be empty"))
	}

	if c.Translator.DefaultMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("translator.default_max_tokens must be > 0, got %d", c.Translator.DefaultMaxTokens))
	}

	switch strings.ToUpper(c.Logging.Level) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be TRACE, DEBUG, INFO, WARN or ERROR, got %q", c.Logging.Level))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}

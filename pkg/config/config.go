// Package config provides unified configuration for the relay gateway.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (RELAY_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// Parameter Store references (_parameter suffix fields) need network
// access and are resolved separately by ResolveParameters.
package config

import "time"

// Config holds all configuration for the relay gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Engine        EngineConfig        `yaml:"engine"`
	Upstream      UpstreamConfig      `yaml:"upstream"`
	Translator    TranslatorConfig    `yaml:"translator"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 0 (streams)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 10 MiB
}

// EngineConfig holds request routing settings.
type EngineConfig struct {
	SourceFormat string            `yaml:"source_format"` // default: "openai"
	TargetFormat string            `yaml:"target_format"` // default: "kiro"
	DefaultModel string            `yaml:"default_model"` // optional
	ModelAliases map[string]string `yaml:"model_aliases"` // client name -> upstream id
}

// UpstreamConfig holds the upstream conversation API settings.
type UpstreamConfig struct {
	Type    string        `yaml:"type"`     // "kiro" or "none", default: "kiro"
	BaseURL string        `yaml:"base_url"` // required for type=kiro
	Path    string        `yaml:"path"`     // default: "/generateAssistantResponse"
	Timeout time.Duration `yaml:"timeout"`  // default: 120s

	APIKey          string `yaml:"api_key"`
	APIKeyFile      string `yaml:"api_key_file"`      // _file variant for api_key
	APIKeyParameter string `yaml:"api_key_parameter"` // SSM variant for api_key

	ProfileARN          string `yaml:"profile_arn"`
	ProfileARNParameter string `yaml:"profile_arn_parameter"` // SSM variant for profile_arn

	// Region for Parameter Store lookups. Empty uses the AWS default chain.
	Region string `yaml:"region"`
}

// TranslatorConfig holds openai -> kiro translation tunables.
type TranslatorConfig struct {
	DefaultMaxTokens      int `yaml:"default_max_tokens"`       // default: 32000
	SystemPromptWarnChars int `yaml:"system_prompt_warn_chars"` // default: 10000
	ContentWarnChars      int `yaml:"content_warn_chars"`       // default: 20000
}

// LoggingConfig holds log level and debug category settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR or TRACE, default: INFO
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodySize:     10 << 20,
		},
		Engine: EngineConfig{
			SourceFormat: "openai",
			TargetFormat: "kiro",
		},
		Upstream: UpstreamConfig{
			Type:    "kiro",
			Path:    "/generateAssistantResponse",
			Timeout: 120 * time.Second,
		},
		Translator: TranslatorConfig{
			DefaultMaxTokens:      32000,
			SystemPromptWarnChars: 10000,
			ContentWarnChars:      20000,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, RELAY_CONFIG env, ./config.yaml, /etc/relay/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. RELAY_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/relay/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("RELAY_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/relay/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps RELAY_* environment variables to config fields.
// Malformed numeric or duration values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	strVars := map[string]*string{
		"RELAY_UPSTREAM_URL":      &cfg.Upstream.BaseURL,
		"RELAY_UPSTREAM_PATH":     &cfg.Upstream.Path,
		"RELAY_UPSTREAM_TYPE":     &cfg.Upstream.Type,
		"RELAY_API_KEY":           &cfg.Upstream.APIKey,
		"RELAY_PROFILE_ARN":       &cfg.Upstream.ProfileARN,
		"RELAY_AWS_REGION":        &cfg.Upstream.Region,
		"RELAY_MODEL":             &cfg.Engine.DefaultModel,
		"RELAY_SOURCE_FORMAT":     &cfg.Engine.SourceFormat,
		"RELAY_TARGET_FORMAT":     &cfg.Engine.TargetFormat,
		"RELAY_LOG_LEVEL":         &cfg.Logging.Level,
		"RELAY_DEBUG":             &cfg.Logging.Debug,
		"RELAY_METRICS_PATH":      &cfg.Observability.Metrics.Path,
		"RELAY_API_KEY_PARAM":     &cfg.Upstream.APIKeyParameter,
		"RELAY_PROFILE_ARN_PARAM": &cfg.Upstream.ProfileARNParameter,
	}
	for key, dst := range strVars {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"RELAY_PORT":       &cfg.Server.Port,
		"RELAY_MAX_TOKENS": &cfg.Translator.DefaultMaxTokens,
	}
	for key, dst := range intVars {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	durVars := map[string]*time.Duration{
		"RELAY_READ_TIMEOUT":     &cfg.Server.ReadTimeout,
		"RELAY_WRITE_TIMEOUT":    &cfg.Server.WriteTimeout,
		"RELAY_UPSTREAM_TIMEOUT": &cfg.Upstream.Timeout,
	}
	for key, dst := range durVars {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v := os.Getenv("RELAY_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RELAY_METRICS_ENABLED: %w", err)
		}
		cfg.Observability.Metrics.Enabled = enabled
	}

	// RELAY_MODEL_ALIASES: JSON object of client name -> upstream model id.
	if v := os.Getenv("RELAY_MODEL_ALIASES"); v != "" {
		aliases, err := parseModelAliasesJSON(v)
		if err != nil {
			return err
		}
		cfg.Engine.ModelAliases = aliases
	}

	return nil
}

// parseModelAliasesJSON parses a JSON object of model aliases.
func parseModelAliasesJSON(jsonStr string) (map[string]string, error) {
	var aliases map[string]string
	if err := json.Unmarshal([]byte(jsonStr), &aliases); err != nil {
		return nil, fmt.Errorf("parsing model aliases JSON: %w", err)
	}
	return aliases, nil
}

// resolveFileReferences reads _file fields and populates the corresponding value fields.
// The file is only read when the value field is empty.
func resolveFileReferences(cfg *Config) error {
	// upstream.api_key_file -> upstream.api_key
	if cfg.Upstream.APIKeyFile != "" && cfg.Upstream.APIKey == "" {
		val, err := readSecretFile(cfg.Upstream.APIKeyFile)
		if err != nil {
			return fmt.Errorf("upstream.api_key_file: %w", err)
		}
		cfg.Upstream.APIKey = val
	}
	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

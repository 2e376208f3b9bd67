package kiro

import "time"

// DefaultPath is the Kiro endpoint that answers conversation requests.
const DefaultPath = "/generateAssistantResponse"

// Config holds configuration for the Kiro upstream client.
type Config struct {
	// BaseURL is the Kiro service URL (e.g., "https://codewhisperer.us-east-1.amazonaws.com").
	BaseURL string

	// Path is appended to BaseURL. Defaults to DefaultPath.
	Path string

	// APIKey is sent as a bearer token (optional).
	APIKey string

	// Timeout for non-streaming requests. Defaults to 120s. Streaming
	// requests are bounded by the request context only.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Path:    DefaultPath,
		Timeout: 120 * time.Second,
	}
}

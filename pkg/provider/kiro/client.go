package kiro

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/provider"
)

// Client posts translated payloads to the Kiro conversation API.
type Client struct {
	cfg          Config
	client       *http.Client
	streamClient *http.Client
}

// Ensure Client implements provider.Backend at compile time.
var _ provider.Backend = (*Client)(nil)

// New creates a new Client with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("kiro: BaseURL is required")
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &Client{
		cfg:    cfg,
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		// A stream can legitimately outlive any fixed timeout; the
		// request context controls its lifetime instead.
		streamClient: &http.Client{Transport: transport},
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return "kiro"
}

// URL returns the endpoint requests are posted to.
func (c *Client) URL() string {
	return c.cfg.BaseURL + c.cfg.Path
}

// Send posts body to the Kiro endpoint and returns the successful reply.
func (c *Client) Send(ctx context.Context, body []byte, stream bool) (*provider.Reply, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "application/vnd.amazon.eventstream, text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	debug.Log("upstream", "request", "method", http.MethodPost, "url", c.URL(), "stream", stream, "bytes", len(body))
	debug.Raw("upstream", string(body))

	client := c.client
	if stream {
		client = c.streamClient
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}

	debug.Log("upstream", "response", "status", httpResp.StatusCode, "content_type", httpResp.Header.Get("Content-Type"))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, MapHTTPError(httpResp)
	}

	return &provider.Reply{
		StatusCode:  httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        httpResp.Body,
	}, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

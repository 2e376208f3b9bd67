// Command server runs the relay gateway: an OpenAI chat-completions
// endpoint that translates requests into Kiro conversationState payloads
// and relays the upstream reply.
//
// Configuration is read from a YAML file (-config, RELAY_CONFIG,
// ./config.yaml or /etc/relay/config.yaml) with RELAY_* environment
// overrides. Common variables:
//
//	RELAY_UPSTREAM_URL - Kiro service base URL (required unless upstream.type is "none")
//	RELAY_API_KEY      - bearer token for the upstream (optional)
//	RELAY_PROFILE_ARN  - profile ARN sent with every payload (optional)
//	RELAY_MODEL        - default model when a request names none
//	RELAY_PORT         - listen port (default: 8080)
//	RELAY_DEBUG        - debug categories, e.g. "translator,upstream"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/relay/pkg/config"
	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/engine"
	"github.com/rhuss/relay/pkg/observability"
	"github.com/rhuss/relay/pkg/paramstore"
	"github.com/rhuss/relay/pkg/provider"
	"github.com/rhuss/relay/pkg/provider/kiro"
	"github.com/rhuss/relay/pkg/translator"
	"github.com/rhuss/relay/pkg/translator/openaikiro"
	transporthttp "github.com/rhuss/relay/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	if cfg.NeedsParameterStore() {
		ctx := context.Background()
		store, err := paramstore.NewFromEnvironment(ctx, cfg.Upstream.Region)
		if err != nil {
			return fmt.Errorf("creating parameter store client: %w", err)
		}
		if err := config.ResolveParameters(ctx, cfg, store); err != nil {
			return fmt.Errorf("resolving parameters: %w", err)
		}
	}

	// Translators.
	registry := translator.NewRegistry()
	tr := openaikiro.New(openaikiro.Config{
		Sink:                  &observability.WarningSink{Logger: slog.Default()},
		DefaultMaxTokens:      cfg.Translator.DefaultMaxTokens,
		SystemPromptWarnChars: cfg.Translator.SystemPromptWarnChars,
		ContentWarnChars:      cfg.Translator.ContentWarnChars,
	})
	if err := tr.Register(registry); err != nil {
		return fmt.Errorf("registering translator: %w", err)
	}

	// Upstream.
	var backend provider.Backend
	if cfg.Upstream.Type == "kiro" {
		client, err := kiro.New(kiro.Config{
			BaseURL: cfg.Upstream.BaseURL,
			Path:    cfg.Upstream.Path,
			APIKey:  cfg.Upstream.APIKey,
			Timeout: cfg.Upstream.Timeout,
		})
		if err != nil {
			return fmt.Errorf("creating upstream client: %w", err)
		}
		defer client.Close()
		backend = client
		slog.Info("upstream configured", "type", "kiro", "url", client.URL())
	} else {
		slog.Info("upstream disabled, serving translations only")
	}

	eng, err := engine.New(registry, backend, engine.Config{
		SourceFormat: translator.Format(cfg.Engine.SourceFormat),
		TargetFormat: translator.Format(cfg.Engine.TargetFormat),
		DefaultModel: cfg.Engine.DefaultModel,
		ModelAliases: cfg.Engine.ModelAliases,
		Credentials:  translator.Credentials{ProfileARN: cfg.Upstream.ProfileARN},
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(":" + strconv.Itoa(cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithHandler("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok\n"))
		})),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts,
			transporthttp.WithHandler("GET "+cfg.Observability.Metrics.Path, promhttp.Handler()),
			transporthttp.WithHTTPMiddleware(observability.MetricsMiddleware),
		)
	}

	slog.Info("relay starting",
		"port", cfg.Server.Port,
		"source", cfg.Engine.SourceFormat,
		"target", cfg.Engine.TargetFormat,
		"default_model", cfg.Engine.DefaultModel,
		"debug", debug.Categories(),
	)

	return transporthttp.NewServer(eng, opts...).ListenAndServe()
}

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/observability"
	"github.com/rhuss/relay/pkg/provider"
	"github.com/rhuss/relay/pkg/transport"
	"github.com/rhuss/relay/pkg/translator"
)

// relayChunkSize is the read size used when copying upstream replies.
const relayChunkSize = 32 << 10

// Engine dispatches exchanges to translators and relays upstream replies.
// It implements transport.Gateway.
type Engine struct {
	registry *translator.Registry
	backend  provider.Backend
	cfg      Config
}

// Ensure Engine implements transport.Gateway at compile time.
var _ transport.Gateway = (*Engine)(nil)

// New creates a new Engine. The registry must not be nil. The backend
// can be nil for translate-only operation.
func New(registry *translator.Registry, backend provider.Backend, cfg Config) (*Engine, error) {
	if registry == nil {
		return nil, fmt.Errorf("engine: registry must not be nil")
	}
	return &Engine{
		registry: registry,
		backend:  backend,
		cfg:      cfg,
	}, nil
}

// Pairs lists the registered translations.
func (e *Engine) Pairs() []translator.Pair {
	return e.registry.Pairs()
}

// Translate resolves the exchange's formats and model and returns the
// translated payload. The resolved values are written back to ex.
func (e *Engine) Translate(ctx context.Context, ex *transport.Exchange) (any, error) {
	if ex.Source == "" {
		ex.Source = e.cfg.source()
	}
	if ex.Target == "" {
		ex.Target = e.cfg.target()
	}

	model := e.cfg.resolveModel(ex.Model)
	if model == "" {
		return nil, api.NewInvalidRequestError("model", "model is required")
	}
	ex.Model = model

	entry, ok := e.registry.Lookup(ex.Source, ex.Target)
	if !ok {
		return nil, api.NewNotFoundError(fmt.Sprintf("no translator registered for %s -> %s", ex.Source, ex.Target))
	}

	start := time.Now()
	payload, err := entry.Request(ctx, &translator.Request{
		Model:       model,
		Body:        ex.Body,
		Stream:      ex.Stream,
		Credentials: e.cfg.Credentials,
	})
	observability.TranslationDuration.WithLabelValues(string(ex.Source), string(ex.Target)).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.TranslationsTotal.WithLabelValues(string(ex.Source), string(ex.Target), "error").Inc()
		debug.Log("engine", "translation failed", "source", ex.Source, "target", ex.Target, "error", err)

		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, api.NewInvalidRequestError("", fmt.Sprintf("translate request: %s", err.Error()))
	}

	observability.TranslationsTotal.WithLabelValues(string(ex.Source), string(ex.Target), "ok").Inc()
	return payload, nil
}

// Forward translates the exchange, sends it upstream and copies the reply
// to w. Streamed replies are flushed after every chunk.
func (e *Engine) Forward(ctx context.Context, ex *transport.Exchange, w transport.ResponseWriter) error {
	payload, err := e.Translate(ctx, ex)
	if err != nil {
		return err
	}
	if e.backend == nil {
		return api.NewServerError("no upstream backend configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return api.NewServerError(fmt.Sprintf("failed to encode upstream request: %s", err.Error()))
	}

	if ex.Stream {
		observability.StreamingConnections.Inc()
		defer observability.StreamingConnections.Dec()
	}

	name := e.backend.Name()
	start := time.Now()
	reply, err := e.backend.Send(ctx, body, ex.Stream)
	observability.ProviderLatency.WithLabelValues(name, ex.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ProviderRequestsTotal.WithLabelValues(name, ex.Model, "error").Inc()
		return err
	}
	defer reply.Body.Close()
	observability.ProviderRequestsTotal.WithLabelValues(name, ex.Model, strconv.Itoa(reply.StatusCode)).Inc()

	if err := w.WriteHeader(reply.StatusCode, reply.ContentType); err != nil {
		return err
	}

	n, err := relay(ctx, reply.Body, w, ex.Stream)
	observability.RelayedBytesTotal.WithLabelValues(name).Add(float64(n))
	debug.Log("engine", "relay finished", "model", ex.Model, "stream", ex.Stream, "bytes", n, "duration", time.Since(start))
	return err
}

// relay copies src to w in chunks and returns the number of bytes written.
func relay(ctx context.Context, src io.Reader, w transport.ResponseWriter, stream bool) (int64, error) {
	buf := make([]byte, relayChunkSize)
	var total int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			written, err := w.Write(buf[:n])
			total += int64(written)
			if err != nil {
				return total, fmt.Errorf("write to client: %w", err)
			}
			if stream {
				if err := w.Flush(); err != nil {
					return total, fmt.Errorf("flush to client: %w", err)
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return total, ctxErr
			}
			return total, api.NewUpstreamError("", fmt.Sprintf("reading upstream reply: %s", readErr.Error()))
		}
	}

	if !stream {
		if err := w.Flush(); err != nil {
			return total, fmt.Errorf("flush to client: %w", err)
		}
	}
	return total, nil
}

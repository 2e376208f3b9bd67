package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/debug"
	"github.com/rhuss/relay/pkg/transport"
)

// Adapter serves the chat-completions relay over HTTP.
// It routes requests to the gateway and writes replies or errors.
type Adapter struct {
	forwarder transport.Forwarder
	gateway   transport.Gateway
	inflight  *transport.InFlightRegistry
	mux       *http.ServeMux
	config    Config
	logger    *slog.Logger
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64
	Logger      *slog.Logger
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxBodySize: 10 << 20, // 10 MB
	}
}

// NewAdapter creates an HTTP adapter for the given gateway. Middleware is
// applied to the gateway's Forward method in the given order.
func NewAdapter(gw transport.Gateway, cfg Config, middlewares ...transport.Middleware) *Adapter {
	var fwd transport.Forwarder = gw
	if len(middlewares) > 0 {
		fwd = transport.Chain(middlewares...)(fwd)
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		forwarder: fwd,
		gateway:   gw,
		inflight:  transport.NewInFlightRegistry(),
		mux:       http.NewServeMux(),
		config:    cfg,
		logger:    logger,
	}

	a.mux.HandleFunc("POST /v1/chat/completions", a.handleChatCompletions)
	a.mux.HandleFunc("POST /v1/translate", a.handleTranslate)
	a.mux.HandleFunc("GET /v1/translators", a.handleListTranslators)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// HTTP-level middleware for request ID propagation.
func (a *Adapter) Handler() http.Handler {
	return httpRequestIDMiddleware(a.mux)
}

// CancelInFlight cancels every streaming relay still running and returns
// how many were cancelled.
func (a *Adapter) CancelInFlight() int {
	return a.inflight.CancelAll()
}

// httpRequestIDMiddleware is HTTP-level middleware that propagates the
// X-Request-ID header. A valid client-supplied ID is kept; otherwise one is
// generated. The ID is stored in the request context and echoed in the
// response headers before the first write.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := transport.ValidRequestID(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = transport.NewRequestID()
		}
		r = r.WithContext(transport.ContextWithRequestID(r.Context(), id))

		rw := &requestIDResponseWriter{ResponseWriter: w, r: r}
		next.ServeHTTP(rw, r)
	})
}

// requestIDResponseWriter wraps http.ResponseWriter to inject the
// X-Request-ID header before the first write.
type requestIDResponseWriter struct {
	http.ResponseWriter
	r           *http.Request
	headersSent bool
}

func (w *requestIDResponseWriter) WriteHeader(statusCode int) {
	w.ensureRequestIDHeader()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *requestIDResponseWriter) Write(b []byte) (int, error) {
	w.ensureRequestIDHeader()
	return w.ResponseWriter.Write(b)
}

func (w *requestIDResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (w *requestIDResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *requestIDResponseWriter) ensureRequestIDHeader() {
	if w.headersSent {
		return
	}
	w.headersSent = true
	if id := transport.RequestIDFromContext(w.r.Context()); id != "" {
		w.ResponseWriter.Header().Set("X-Request-ID", id)
	}
}

// handleChatCompletions handles POST /v1/chat/completions.
func (a *Adapter) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	ex, ok := a.readExchange(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if ex.Stream {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()

		id := transport.RequestIDFromContext(ctx)
		release := a.inflight.Register(id, cancel)
		defer release()
	}

	rw := newRelayWriter(w)
	if err := a.forwarder.Forward(ctx, ex, rw); err != nil {
		a.writeHandlerError(w, rw, err)
	}
}

// handleTranslate handles POST /v1/translate. It returns the payload the
// request would be sent upstream as.
func (a *Adapter) handleTranslate(w http.ResponseWriter, r *http.Request) {
	ex, ok := a.readExchange(w, r)
	if !ok {
		return
	}

	payload, err := a.gateway.Translate(r.Context(), ex)
	if err != nil {
		transport.WriteAPIError(w, toAPIError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// translatorList is the body of GET /v1/translators.
type translatorList struct {
	Object string `json:"object"`
	Data   any    `json:"data"`
}

// handleListTranslators handles GET /v1/translators.
func (a *Adapter) handleListTranslators(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(translatorList{Object: "list", Data: a.gateway.Pairs()})
}

// readExchange validates the request envelope and reads the body. Only the
// fields needed for routing are looked at here; the translator decodes the
// rest. On failure the error response has been written and ok is false.
func (a *Adapter) readExchange(w http.ResponseWriter, r *http.Request) (ex *transport.Exchange, ok bool) {
	if ct := r.Header.Get("Content-Type"); ct != "" && mediaType(ct) != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return nil, false
		}
		transport.WriteAPIError(w, api.NewInvalidRequestError("body", "failed to read body: "+err.Error()))
		return nil, false
	}

	if !gjson.ValidBytes(body) {
		transport.WriteAPIError(w, api.NewInvalidRequestError("body", "invalid JSON"))
		return nil, false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		transport.WriteAPIError(w, api.NewInvalidRequestError("body", "request body must be a JSON object"))
		return nil, false
	}
	if !root.Get("messages").IsArray() {
		transport.WriteAPIError(w, api.NewInvalidRequestError("messages", "messages must be an array"))
		return nil, false
	}

	model := root.Get("model")
	if model.Exists() && model.Type != gjson.String && model.Type != gjson.Null {
		transport.WriteAPIError(w, api.NewInvalidRequestError("model", "model must be a string"))
		return nil, false
	}

	ex = &transport.Exchange{
		Model:  model.String(),
		Stream: root.Get("stream").Bool(),
		Body:   body,
	}
	debug.Log("transport", "request received", "path", r.URL.Path, "model", ex.Model, "stream", ex.Stream, "bytes", len(body))
	return ex, true
}

// writeHandlerError writes an error response from the gateway. Once the
// upstream reply has started there is no way to report an error in-band,
// so it is only logged and the connection ends with what was sent.
func (a *Adapter) writeHandlerError(w http.ResponseWriter, rw *relayWriter, err error) {
	apiErr := toAPIError(err)

	if rw.hasStarted() {
		a.logger.Warn("relay interrupted", "error", apiErr.Error())
		return
	}

	transport.WriteAPIError(w, apiErr)
}

func toAPIError(err error) *api.APIError {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) {
		return api.NewServerError("request cancelled")
	}
	return api.NewServerError(err.Error())
}

// mediaType returns the lowercased media type of a Content-Type value
// without parameters.
func mediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

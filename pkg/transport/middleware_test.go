package transport

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rhuss/relay/pkg/api"
	"github.com/rhuss/relay/pkg/translator"
)

// recordingWriter is a minimal ResponseWriter for testing middleware.
type recordingWriter struct {
	status      int
	contentType string
	body        bytes.Buffer
	flushed     bool
}

func (w *recordingWriter) WriteHeader(status int, contentType string) error {
	w.status = status
	w.contentType = contentType
	return nil
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	return w.body.Write(p)
}

func (w *recordingWriter) Flush() error {
	w.flushed = true
	return nil
}

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next Forwarder) Forwarder {
			return ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
				order = append(order, name+":before")
				err := next.Forward(ctx, ex, w)
				order = append(order, name+":after")
				return err
			})
		}
	}

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		order = append(order, "handler")
		return nil
	})

	chain := Chain(mw("first"), mw("second"), mw("third"))
	wrapped := chain(handler)

	wrapped.Forward(context.Background(), &Exchange{}, &recordingWriter{})

	expected := []string{
		"first:before", "second:before", "third:before",
		"handler",
		"third:after", "second:after", "first:after",
	}

	if len(order) != len(expected) {
		t.Fatalf("execution order length = %d, want %d: %v", len(order), len(expected), order)
	}
	for i, got := range order {
		if got != expected[i] {
			t.Errorf("order[%d] = %q, want %q", i, got, expected[i])
		}
	}
}

func TestChainSkipsNilMiddleware(t *testing.T) {
	var order []string
	mw := func(next Forwarder) Forwarder {
		return ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
			order = append(order, "mw")
			return next.Forward(ctx, ex, w)
		})
	}
	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		order = append(order, "handler")
		return nil
	})

	wrapped := Chain(nil, mw, nil)(handler)
	if err := wrapped.Forward(context.Background(), &Exchange{}, &recordingWriter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(order, ",") != "mw,handler" {
		t.Errorf("order = %v, want [mw handler]", order)
	}
}

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "client-id-42", "client-id-42"},
		{"trimmed", "  abc  ", "abc"},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"inner space", "a b", ""},
		{"control character", "abc\x00def", ""},
		{"non-ascii", "réq", ""},
		{"at limit", strings.Repeat("a", MaxRequestIDLength), strings.Repeat("a", MaxRequestIDLength)},
		{"too long", strings.Repeat("a", MaxRequestIDLength+1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRequestID(tt.in); got != tt.want {
				t.Errorf("ValidRequestID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRecoveryCatchesPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		panic("test panic")
	})

	ctx := ContextWithRequestID(context.Background(), "req-panic")
	wrapped := Recovery(logger)(handler)
	err := wrapped.Forward(ctx, &Exchange{Model: "test-model"}, &recordingWriter{})

	if err == nil {
		t.Fatal("expected error after panic, got nil")
	}

	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected *api.APIError, got %T: %v", err, err)
	}
	if apiErr.Type != api.ErrorTypeServerError {
		t.Errorf("error type = %q, want %q", apiErr.Type, api.ErrorTypeServerError)
	}
	if strings.Contains(apiErr.Message, "test panic") {
		t.Errorf("error message %q leaks the panic value", apiErr.Message)
	}

	output := buf.String()
	for _, expected := range []string{"relay panicked", "request_id=req-panic", "model=test-model", "test panic", "stack="} {
		if !strings.Contains(output, expected) {
			t.Errorf("log output missing %q in:\n%s", expected, output)
		}
	}
}

func TestRecoveryPassesThroughNormalExecution(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		return nil
	})

	wrapped := Recovery(logger)(handler)
	err := wrapped.Forward(context.Background(), &Exchange{}, &recordingWriter{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestRequestIDGeneratesNewID(t *testing.T) {
	var capturedID string

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		capturedID = RequestIDFromContext(ctx)
		return nil
	})

	wrapped := RequestID()(handler)
	wrapped.Forward(context.Background(), &Exchange{}, &recordingWriter{})

	if capturedID == "" {
		t.Error("expected a generated request ID, got empty string")
	}
	if len(capturedID) != 32 { // 16 bytes = 32 hex chars
		t.Errorf("request ID length = %d, want 32 (hex encoded)", len(capturedID))
	}
}

func TestRequestIDPropagatesExisting(t *testing.T) {
	var capturedID string

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		capturedID = RequestIDFromContext(ctx)
		return nil
	})

	ctx := ContextWithRequestID(context.Background(), "existing-id-123")
	wrapped := RequestID()(handler)
	wrapped.Forward(ctx, &Exchange{}, &recordingWriter{})

	if capturedID != "existing-id-123" {
		t.Errorf("request ID = %q, want %q", capturedID, "existing-id-123")
	}
}

func TestRequestIDUniqueness(t *testing.T) {
	ids := make(map[string]bool)
	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		ids[RequestIDFromContext(ctx)] = true
		return nil
	})

	wrapped := RequestID()(handler)
	for i := 0; i < 100; i++ {
		wrapped.Forward(context.Background(), &Exchange{}, &recordingWriter{})
	}

	if len(ids) != 100 {
		t.Errorf("expected 100 unique IDs, got %d", len(ids))
	}
}

func TestLoggingEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		return nil
	})

	ctx := ContextWithRequestID(context.Background(), "req-log-test")
	wrapped := Logging(logger)(handler)
	wrapped.Forward(ctx, &Exchange{Source: translator.FormatOpenAI, Target: translator.FormatKiro, Model: "test-model", Stream: true}, &recordingWriter{})

	output := buf.String()
	for _, expected := range []string{"request_id=req-log-test", "source=openai", "target=kiro", "model=test-model", "stream=true", "request completed"} {
		if !strings.Contains(output, expected) {
			t.Errorf("log output missing %q in:\n%s", expected, output)
		}
	}
}

func TestLoggingEmitsErrorOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		return api.NewServerError("test failure")
	})

	wrapped := Logging(logger)(handler)
	wrapped.Forward(context.Background(), &Exchange{Model: "test"}, &recordingWriter{})

	output := buf.String()
	if !strings.Contains(output, "request failed") {
		t.Errorf("log output missing 'request failed' in:\n%s", output)
	}
	if !strings.Contains(output, "test failure") {
		t.Errorf("log output missing error message in:\n%s", output)
	}
}

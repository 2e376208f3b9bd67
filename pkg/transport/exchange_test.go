package transport

import (
	"context"
	"testing"

	"github.com/rhuss/relay/pkg/api"
)

func TestForwarderFuncAdapter(t *testing.T) {
	called := false
	var received *Exchange

	fn := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		called = true
		received = ex
		if err := w.WriteHeader(200, "application/json"); err != nil {
			return err
		}
		_, err := w.Write([]byte(`{}`))
		return err
	})

	// Verify it satisfies the interface.
	var _ Forwarder = fn

	rw := &recordingWriter{}
	if err := fn.Forward(context.Background(), &Exchange{Model: "test-model"}, rw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected function to be called")
	}
	if received.Model != "test-model" {
		t.Errorf("expected model %q, got %q", "test-model", received.Model)
	}
	if rw.status != 200 || rw.contentType != "application/json" || rw.body.String() != `{}` {
		t.Errorf("unexpected relay: status=%d type=%q body=%q", rw.status, rw.contentType, rw.body.String())
	}
}

func TestForwarderFuncReturnsError(t *testing.T) {
	fn := ForwarderFunc(func(ctx context.Context, ex *Exchange, w ResponseWriter) error {
		return api.NewUpstreamError("503", "unavailable")
	})

	err := fn.Forward(context.Background(), &Exchange{}, nil)
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected *api.APIError, got %T", err)
	}
	if apiErr.Type != api.ErrorTypeUpstreamError {
		t.Errorf("expected error type %q, got %q", api.ErrorTypeUpstreamError, apiErr.Type)
	}
}

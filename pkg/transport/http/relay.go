package http

import (
	"errors"
	"net/http"
	"sync"

	"github.com/rhuss/relay/pkg/transport"
)

// relayWriter implements transport.ResponseWriter over an
// http.ResponseWriter, copying the upstream reply through unchanged.
type relayWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController

	mu      sync.Mutex
	started bool
}

var _ transport.ResponseWriter = (*relayWriter)(nil)

func newRelayWriter(w http.ResponseWriter) *relayWriter {
	return &relayWriter{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

// WriteHeader sends the status and content type. Streaming content types
// also get the headers that keep proxies from buffering.
func (r *relayWriter) WriteHeader(status int, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return errors.New("cannot write header: reply already started")
	}
	r.started = true

	h := r.w.Header()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	if isStreamContentType(contentType) {
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
	}
	r.w.WriteHeader(status)
	return nil
}

// Write copies p to the client.
func (r *relayWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return 0, errors.New("cannot write body: header not written")
	}
	return r.w.Write(p)
}

// Flush ensures buffered data is sent to the client.
func (r *relayWriter) Flush() error {
	return r.rc.Flush()
}

// hasStarted returns true once the status line has been sent.
func (r *relayWriter) hasStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func isStreamContentType(ct string) bool {
	switch mediaType(ct) {
	case "text/event-stream", "application/vnd.amazon.eventstream":
		return true
	}
	return false
}

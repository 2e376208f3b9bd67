package transport

import (
	"context"
	"sync"
)

// InFlightRegistry tracks in-flight streaming relays by request ID so that
// they can be cancelled, either by ID or all at once when the server's
// shutdown deadline passes.
//
// Request IDs may come from the client and are not guaranteed to be unique.
// Every registration is tracked separately, so two relays sharing an ID are
// both reachable until each one releases itself.
//
// All methods are safe for concurrent access.
type InFlightRegistry struct {
	mu      sync.Mutex
	entries map[*inFlightEntry]struct{}
}

type inFlightEntry struct {
	id     string
	cancel context.CancelFunc
}

// NewInFlightRegistry creates a new empty registry.
func NewInFlightRegistry() *InFlightRegistry {
	return &InFlightRegistry{
		entries: make(map[*inFlightEntry]struct{}),
	}
}

// Register adds an in-flight relay to the registry. The returned release
// func removes this registration, and only this one, without cancelling it.
// Call it when the stream completes normally. Release is idempotent.
func (r *InFlightRegistry) Register(id string, cancel context.CancelFunc) (release func()) {
	e := &inFlightEntry{id: id, cancel: cancel}

	r.mu.Lock()
	r.entries[e] = struct{}{}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.entries, e)
	}
}

// Cancel cancels every in-flight relay registered under id.
// Returns true if at least one relay was found and cancelled, false if the
// ID was not registered (either already completed or never existed).
func (r *InFlightRegistry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for e := range r.entries {
		if e.id != id {
			continue
		}
		e.cancel()
		delete(r.entries, e)
		found = true
	}
	return found
}

// CancelAll cancels every registered relay and returns how many there were.
func (r *InFlightRegistry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	for e := range r.entries {
		e.cancel()
		delete(r.entries, e)
	}
	return n
}

// Len returns the number of registered relays.
func (r *InFlightRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

package translator

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicatePair is returned when a (source, target) pair is registered twice.
var ErrDuplicatePair = errors.New("translator pair already registered")

// Pair identifies a translation direction.
type Pair struct {
	Source Format `json:"source"`
	Target Format `json:"target"`
}

func (p Pair) String() string {
	return string(p.Source) + "->" + string(p.Target)
}

// Entry is a registered translation.
type Entry struct {
	Pair     Pair
	Request  RequestFunc
	Response ResponseFunc
}

// Registry maps format pairs to translation functions. It is safe for
// concurrent use, although in practice it is filled at startup and only
// read afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[Pair]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Pair]Entry)}
}

// Register adds the translation for source -> target. A nil request
// function or an already registered pair is an error.
func (r *Registry) Register(source, target Format, req RequestFunc, resp ResponseFunc) error {
	if source == "" || target == "" {
		return fmt.Errorf("register translator: source and target formats are required")
	}
	if req == nil {
		return fmt.Errorf("register translator %s->%s: request function is nil", source, target)
	}

	pair := Pair{Source: source, Target: target}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[pair]; ok {
		return fmt.Errorf("register translator %s: %w", pair, ErrDuplicatePair)
	}
	r.entries[pair] = Entry{Pair: pair, Request: req, Response: resp}
	return nil
}

// Lookup returns the entry registered for source -> target.
func (r *Registry) Lookup(source, target Format) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[Pair{Source: source, Target: target}]
	return e, ok
}

// Pairs lists the registered pairs ordered by source, then target.
func (r *Registry) Pairs() []Pair {
	r.mu.RLock()
	pairs := make([]Pair, 0, len(r.entries))
	for p := range r.entries {
		pairs = append(pairs, p)
	}
	r.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})
	return pairs
}

package handler

import (
	"sort"
	"sync"

	"github.com/fedra-io/fedra/internal/errs"
)

// Factory builds a Handler for one named datasource from its raw parameter
// block. Factories validate the block and perform no network I/O — the
// returned handler connects lazily.
type Factory func(name string, params Params) (Handler, error)

// Descriptor is everything the platform knows about one engine: how to
// build handlers for it and which connection parameters it accepts.
type Descriptor struct {
	// Engine is the identifier used in `WITH ENGINE = '<engine>'`.
	Engine string

	// Title is a human-readable engine name for discovery APIs.
	Title string

	// Factory constructs handlers for this engine.
	Factory Factory

	// Args documents the accepted connection parameters.
	Args []ConnectionArg

	// Example is a sample parameter block for documentation endpoints.
	// Secret values carry placeholders, never real credentials.
	Example Params
}

// Registry maps engine identifiers to their descriptors. It is the dispatch
// target for `CREATE DATABASE … WITH ENGINE = 'x'` — the statement parser
// (out of scope here) resolves the engine name through a Registry.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]Descriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Descriptor)}
}

// Register adds an engine. Registering the same engine twice panics —
// engine packages register exactly once from init.
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.engines[d.Engine]; dup {
		panic("handler: Register called twice for engine " + d.Engine)
	}
	if d.Factory == nil {
		panic("handler: Register engine " + d.Engine + " with nil factory")
	}
	r.engines[d.Engine] = d
}

// Lookup returns the descriptor for engine.
func (r *Registry) Lookup(engine string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.engines[engine]
	if !ok {
		return Descriptor{}, errs.Newf(errs.ErrKindInvalidConfig, "unknown engine %q", engine)
	}
	return d, nil
}

// New builds a handler for the named datasource using the given engine.
func (r *Registry) New(engine, name string, params Params) (Handler, error) {
	d, err := r.Lookup(engine)
	if err != nil {
		return nil, err
	}
	return d.Factory(name, params)
}

// Engines returns the registered engine identifiers, sorted.
func (r *Registry) Engines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry. Engine packages register into it
// from init; importing an engine package for side effects enables it:
//
//	import _ "github.com/fedra-io/fedra/internal/handler/supabase"
var Default = NewRegistry()

// Register adds an engine to the Default registry.
func Register(d Descriptor) { Default.Register(d) }

// New builds a handler using the Default registry.
func New(engine, name string, params Params) (Handler, error) {
	return Default.New(engine, name, params)
}

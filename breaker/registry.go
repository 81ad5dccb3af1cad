package breaker

import (
	"slices"
	"strings"
	"sync"
)

// Registry maps dependency names to shared Breaker instances. A breaker is
// created lazily on first request for a name and reused by every subsequent
// caller; instances live for the registry's lifetime and need no teardown.
//
// Applications should pass a Registry through their own wiring rather than
// rely on the process-wide Default, so tests can construct isolated ones.
type Registry struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
	listener Listener
	clock    Clock
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithListener sets a listener applied to every breaker the registry
// creates. A breaker-specific Config.Listener takes precedence.
func WithListener(l Listener) RegistryOption {
	return func(r *Registry) {
		r.listener = l
	}
}

// WithClock sets the clock applied to every breaker the registry creates.
// A breaker-specific Config.Clock takes precedence.
func WithClock(c Clock) RegistryOption {
	return func(r *Registry) {
		r.clock = c
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{breakers: make(map[string]*Breaker)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the breaker registered under name, creating it with cfg on
// first request. The configuration of an already existing breaker is left
// untouched.
func (r *Registry) Get(name string, cfg Config) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[name]; ok {
		return b
	}

	if cfg.Listener == nil {
		cfg.Listener = r.listener
	}
	if cfg.Clock == nil {
		cfg.Clock = r.clock
	}

	b := New(name, cfg)
	r.breakers[name] = b
	return b
}

// Lookup returns the breaker registered under name, if any.
func (r *Registry) Lookup(name string) (*Breaker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.breakers[name]
	return b, ok
}

// Names returns the sorted names of all registered breakers.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.breakers))
	for name := range r.breakers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Breakers returns a snapshot of all registered breakers, sorted by name.
func (r *Registry) Breakers() []*Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	bs := make([]*Breaker, 0, len(r.breakers))
	for _, b := range r.breakers {
		bs = append(bs, b)
	}
	slices.SortFunc(bs, func(a, b *Breaker) int {
		return strings.Compare(a.name, b.name)
	})
	return bs
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// Default returns the process-wide registry, creating it on first call.
func Default() *Registry {
	return defaultRegistry()
}

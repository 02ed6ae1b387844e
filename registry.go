package calllog

import (
	"maps"
	"sync"
)

// Registry counts invocations per qualified name.
// It is safe for concurrent use. The zero value is an empty registry.
type Registry struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[string]uint64)}
}

// Increment adds one to the count for name and returns the new count.
func (r *Registry) Increment(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counts == nil {
		r.counts = make(map[string]uint64)
	}
	r.counts[name]++

	return r.counts[name]
}

// Count returns the number of calls recorded for name since the last Reset.
func (r *Registry) Count(name string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.counts[name]
}

// CountFunc returns the count for fn, looked up by QualifiedName.
// Functions wrapped with WrapNamed must be queried with Count instead.
func (r *Registry) CountFunc(fn any) uint64 {
	return r.Count(QualifiedName(fn))
}

// Reset clears every count.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.counts)
}

// Snapshot returns a copy of all counts.
func (r *Registry) Snapshot() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return maps.Clone(r.counts)
}

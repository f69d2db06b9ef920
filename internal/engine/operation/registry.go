package operation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry manages operation registration by name.
// Lookup is case-insensitive; registering an existing name overwrites it.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		ops: make(map[string]Operation),
	}
}

// NewDefaultRegistry creates a registry populated with the six standard
// operations, each rounding to the given precision.
func NewDefaultRegistry(precision int32) *Registry {
	r := NewRegistry()
	r.Register(NameAdd, NewAddition(precision))
	r.Register(NameSubtract, NewSubtraction(precision))
	r.Register(NameMultiply, NewMultiplication(precision))
	r.Register(NameDivide, NewDivision(precision))
	r.Register(NamePower, NewPower(precision))
	r.Register(NameRoot, NewRoot(precision))
	return r
}

// Register adds an operation under a name, overwriting any existing mapping.
func (r *Registry) Register(name string, op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[normalize(name)] = op
}

// Resolve returns the operation registered under name.
// Returns ErrUnknownOperation if the name is not registered.
func (r *Registry) Resolve(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Has returns true if an operation is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[normalize(name)]
	return ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered operations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ops)
}

// normalize maps a user-supplied name to its registry key.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

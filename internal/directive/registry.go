package directive

import (
	"fmt"
	"slices"
	"sync"
)

// Handler interprets one command. It reads the command's arguments from
// st and emits directives into it.
type Handler func(st *State, cmd Command)

// Command is a recognized "@name" or "\name" occurrence.
type Command struct {
	Name string
	// Dir is the bracketed attribute of @param[in,out].
	Dir string
	// Raw is the command as written, used when a handler declines it.
	Raw string
}

// Registry maps command names to handlers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// DefaultRegistry returns a new registry holding the built-in vocabulary.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Register adds or replaces the handler for name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Alias makes alias behave like the already registered command name.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handlers[name]
	if !ok {
		return fmt.Errorf("directive: alias %q: unknown command %q", alias, name)
	}
	r.handlers[alias] = h
	return nil
}

// Lookup returns the handler registered for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

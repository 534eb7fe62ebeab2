package validator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Definition describes a registered validator.
type Definition struct {
	Name        string
	Description string
	// Attributes and Properties list the recognised setting keys.
	Attributes []string
	Properties []string
	// New returns a fresh, unconfigured instance.
	New func() Validator
}

// Registry maps validator names to definitions. Lookups are
// case-insensitive.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a definition. It panics on an empty name, a nil
// constructor or a duplicate registration.
func (r *Registry) Register(def Definition) {
	if registryKey(def.Name) == "" {
		panic("validator: Register with empty name")
	}
	if def.New == nil {
		panic(fmt.Sprintf("validator: Register %q with nil constructor", def.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := registryKey(def.Name)
	if _, exists := r.defs[key]; exists {
		panic(fmt.Sprintf("validator: %q registered twice", def.Name))
	}
	r.defs[key] = def
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[registryKey(name)]
	return def, ok
}

// New constructs a fresh validator for name.
func (r *Registry) New(name string) (Validator, error) {
	def, ok := r.Get(name)
	if !ok {
		return nil, &UnknownValidatorError{Name: name, Available: r.Names()}
	}
	return def.New(), nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns all definitions sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry built-in validators register
// into.
func Default() *Registry { return defaultRegistry }

// Register adds def to the default registry.
// Called by validator implementations in their init() functions.
func Register(def Definition) { defaultRegistry.Register(def) }

// New constructs a validator from the default registry.
func New(name string) (Validator, error) { return defaultRegistry.New(name) }

// Names lists the default registry.
func Names() []string { return defaultRegistry.Names() }

// Definitions lists the default registry's definitions.
func Definitions() []Definition { return defaultRegistry.Definitions() }

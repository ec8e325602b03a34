package modular

import (
	"fmt"
	"sort"
	"sync"

	"github.com/havennow/havennow/core"
)

// Factory builds a module definition. The return type makes the contract a
// compile-time check for everything registered here.
type Factory func(c core.Container) core.Definition

// Registry maps locators to the module factories compiled into the binary.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds f under locator. Registering a nil factory or the same
// locator twice is a programming error and panics.
func (r *Registry) Register(locator string, f Factory) {
	if f == nil {
		panic(fmt.Sprintf("modular: nil factory for %s", locator))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.factories[locator]; dup {
		panic(fmt.Sprintf("modular: duplicate registration for %s", locator))
	}
	r.factories[locator] = f
}

func (r *Registry) Has(locator string) bool {
	_, ok := r.Lookup(locator)
	return ok
}

func (r *Registry) Lookup(locator string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[locator]
	return f, ok
}

// Locators returns every registered locator, sorted.
func (r *Registry) Locators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for l := range r.factories {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

package core

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotBound is returned by Make when nothing is bound at a locator.
var ErrNotBound = errors.New("container: locator not bound")

// Factory builds the value bound at a locator. It receives the container so
// it can resolve its own dependencies.
type Factory func(c Container) (any, error)

// Container is the application context shared by every module. It holds
// typed values (Set/Get) and locator bindings (Bind/Singleton/Make).
type Container interface {
	Set(key any, val any)
	Get(key any) (any, bool)
	MustGet(key any) any

	// Bind registers a factory invoked on every Make.
	Bind(locator string, f Factory)
	// Singleton registers a factory invoked once; later Makes return the
	// cached instance.
	Singleton(locator string, f Factory)
	// Bound reports whether a factory or instance exists at locator.
	Bound(locator string) bool
	// Make constructs or retrieves the value at locator.
	Make(locator string) (any, error)
}

type binding struct {
	factory  Factory
	shared   bool
	instance any
	built    bool
}

type container struct {
	mu       sync.RWMutex
	reg      map[any]any
	bindings map[string]*binding
}

func NewContainer() Container {
	return &container{
		reg:      make(map[any]any),
		bindings: make(map[string]*binding),
	}
}

func (c *container) Set(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg[key] = val
}

func (c *container) Get(key any) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.reg[key]
	return v, ok
}

func (c *container) MustGet(key any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	panic(fmt.Errorf("container: missing dependency %v (%T)", key, key))
}

func (c *container) Bind(locator string, f Factory) {
	c.bind(locator, f, false)
}

func (c *container) Singleton(locator string, f Factory) {
	c.bind(locator, f, true)
}

func (c *container) bind(locator string, f Factory, shared bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[locator] = &binding{factory: f, shared: shared}
}

func (c *container) Bound(locator string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[locator]
	return ok
}

// Make runs the factory outside the lock so factories may call back into
// the container (Get, Bound, even Make on other locators).
func (c *container) Make(locator string) (any, error) {
	c.mu.RLock()
	b, ok := c.bindings[locator]
	if ok && b.shared && b.built {
		v := b.instance
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBound, locator)
	}

	v, err := b.factory(c)
	if err != nil {
		return nil, fmt.Errorf("container: make %s: %w", locator, err)
	}
	if !b.shared {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if b.built {
		return b.instance, nil
	}
	b.instance, b.built = v, true
	return v, nil
}

// Helpers for typed keys
type TypeKey[T any] struct{}

func Put[T any](c Container, v T) { c.Set(TypeKey[T]{}, v) }

func Get[T any](c Container) T {
	raw := c.MustGet(TypeKey[T]{})
	v, ok := raw.(T)
	if !ok {
		panic(fmt.Errorf("container: wrong type. have=%T want=%v", raw, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return v
}

// Lookup is the non-panicking form of Get.
func Lookup[T any](c Container) (T, bool) {
	raw, ok := c.Get(TypeKey[T]{})
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

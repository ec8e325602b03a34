package config

import (
	"context"
	"reflect"
	"sync"
)

// Event describes a reload that changed the configuration. ChangedKeys are
// the top-level keys (app, server, logging, ...) whose values differ.
type Event struct {
	ChangedKeys []string
	Old         Root
	New         Root
}

// Changed reports whether key is among the changed top-level keys.
func (e Event) Changed(key string) bool {
	for _, k := range e.ChangedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Manager owns the process configuration. It loads Defaults plus its
// sources, and Reload swaps in a new Root only if the merged result binds
// and validates, so readers never see a partial update.
//
// Modules are bootstrapped once from the first Root; a reload that touches
// modules is reported to subscribers but takes effect on restart.
type Manager struct {
	sources []Source

	mu   sync.RWMutex
	cfg  Root
	subs []chan Event
}

// NewManager performs the initial load and fails if it does not validate.
func NewManager(ctx context.Context, sources ...Source) (*Manager, error) {
	m := &Manager{sources: sources}
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Config returns the current configuration.
func (m *Manager) Config() Root {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Reload re-reads every source. On failure the current configuration is
// kept. Subscribers are notified only when something changed.
func (m *Manager) Reload(ctx context.Context) error {
	next, err := Load(ctx, m.sources...)
	if err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.cfg
	m.cfg = next
	m.mu.Unlock()

	if reflect.DeepEqual(prev, next) {
		return nil
	}
	m.notify(diffEvent(prev, next))
	return nil
}

// Subscribe registers ch for change events. Sends never block: an event is
// dropped when ch is full, so give ch a buffer. The Manager never closes ch.
func (m *Manager) Subscribe(ch chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, ch)
}

func (m *Manager) notify(evt Event) {
	m.mu.RLock()
	subs := append([]chan Event(nil), m.subs...)
	m.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

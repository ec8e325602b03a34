// Package modular enables the modules named in configuration: it resolves
// each identifier to a locator, constructs the module through the
// application container, checks it against core.Definition, injects the
// container and name, and bootstraps it.
package modular

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/havennow/havennow/core"
)

// Enabled describes a module that finished Bootstrap.
type Enabled struct {
	Name     string        `json:"name"`
	Locator  string        `json:"locator"`
	Ready    bool          `json:"ready"`
	Duration time.Duration `json:"duration"`

	module core.Definition
}

// Report lists enabled modules in initialization order. The loader stores
// it in the container under core.TypeKey[*Report].
type Report struct {
	RunID   string    `json:"runId"`
	Modules []Enabled `json:"modules"`
}

type Option func(*Loader)

func WithMetrics(m *Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// Loader is the core.ModuleLoader driven by a sort-keyed module list.
type Loader struct {
	resolver  Resolver
	available map[int]string
	registry  *Registry
	app       core.Container
	logger    *slog.Logger
	metrics   *Metrics
	report    *Report
}

var _ core.ModuleLoader = (*Loader)(nil)

// NewLoader builds a loader for the modules in available, keyed by sort key.
func NewLoader(res Resolver, available map[int]string, reg *Registry, app core.Container, opts ...Option) *Loader {
	if reg == nil {
		reg = NewRegistry()
	}
	l := &Loader{
		resolver:  res,
		available: available,
		registry:  reg,
		app:       app,
		logger:    slog.Default(),
		report:    &Report{},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Ordered returns the identifiers of available in ascending sort-key order.
func Ordered(available map[int]string) []string {
	keys := make([]int, 0, len(available))
	for k := range available {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, available[k])
	}
	return out
}

// Bootstrap enables every configured module in order and stops at the
// first failure. Modules enabled before the failure stay enabled.
func (l *Loader) Bootstrap() error {
	l.report = &Report{RunID: uuid.NewString()}
	core.Put[*Report](l.app, l.report)

	log := l.logger.With("run_id", l.report.RunID)
	names := Ordered(l.available)
	log.Info("bootstrapping modules", "count", len(names))

	for _, name := range names {
		start := time.Now()
		en, err := l.enableModule(name)
		elapsed := time.Since(start)
		l.metrics.observe(name, outcome(en, err), elapsed)
		if err != nil {
			return err
		}

		en.Duration = elapsed
		l.report.Modules = append(l.report.Modules, en)
		if !en.Ready {
			log.Warn("module bootstrapped but not ready", "module", name, "locator", en.Locator)
			continue
		}
		log.Info("module enabled", "module", name, "locator", en.Locator, "duration_ms", elapsed.Milliseconds())
	}
	return nil
}

// enableModule takes one module from identifier to bootstrapped instance.
// The contract check runs before any setter is called.
func (l *Loader) enableModule(name string) (Enabled, error) {
	locator := l.resolver.Locate(name)
	en := Enabled{Name: name, Locator: locator}

	if !l.app.Bound(locator) {
		f, ok := l.registry.Lookup(locator)
		if !ok {
			return en, &ModuleNotFoundError{Locator: locator}
		}
		l.app.Singleton(locator, func(c core.Container) (any, error) {
			return f(c), nil
		})
	}

	inst, err := l.app.Make(locator)
	if err != nil {
		return en, err
	}

	def, ok := inst.(core.Definition)
	if !ok || isNil(def) {
		return en, &InvalidSignatureError{Locator: locator}
	}

	def.SetApp(l.app)
	def.SetName(name)
	en.module = def

	ready, err := def.Bootstrap()
	if err != nil {
		return en, err
	}
	en.Ready = ready
	return en, nil
}

// Enabled returns the modules enabled by the last Bootstrap, in order.
func (l *Loader) Enabled() []Enabled {
	return append([]Enabled(nil), l.report.Modules...)
}

// Start starts enabled modules implementing core.Starter in initialization
// order and stops at the first error.
func (l *Loader) Start(ctx context.Context) error {
	for _, en := range l.report.Modules {
		s, ok := en.module.(core.Starter)
		if !ok {
			continue
		}
		l.logger.Info("starting module", "module", en.Name)
		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("start module %s: %w", en.Name, err)
		}
	}
	return nil
}

// Shutdown stops enabled modules implementing core.Stopper in reverse
// order. Every module gets a Stop call; the first error is returned.
func (l *Loader) Shutdown(ctx context.Context) error {
	var firstErr error
	mods := l.report.Modules
	for i := len(mods) - 1; i >= 0; i-- {
		s, ok := mods[i].module.(core.Stopper)
		if !ok {
			continue
		}
		l.logger.Info("stopping module", "module", mods[i].Name)
		if err := s.Stop(ctx); err != nil {
			l.logger.Error("module stop failed", "module", mods[i].Name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// isNil reports a nil pointer (or other nilable kind) held in a non-nil
// interface, which would otherwise satisfy the contract and panic on SetApp.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func outcome(en Enabled, err error) string {
	switch {
	case err == nil && en.Ready:
		return OutcomeEnabled
	case err == nil:
		return OutcomeNotReady
	case errors.Is(err, ErrModuleNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrInvalidSignature):
		return OutcomeInvalidSignature
	default:
		return OutcomeError
	}
}

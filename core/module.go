package core

import "context"

// Definition is the contract every module must satisfy to be enabled.
//
// The loader calls SetApp, then SetName, then Bootstrap, in that order and
// from a single goroutine.
type Definition interface {
	// SetApp hands the module the shared application context.
	SetApp(c Container)
	// SetName hands the module the identifier it was configured under.
	SetName(name string)
	// Bootstrap initializes the module. The bool reports readiness; an error
	// aborts the whole startup sequence.
	Bootstrap() (bool, error)
}

// Starter is implemented by modules with long-running work. Start runs
// after every configured module has bootstrapped.
type Starter interface {
	// Start begins any long-running work or servers and must not block.
	Start(ctx context.Context) error
}

// Stopper is implemented by modules that hold resources past Bootstrap.
type Stopper interface {
	// Stop gracefully stops the module.
	Stop(ctx context.Context) error
}

// ModuleLoader enables the configured modules and later tears them down.
type ModuleLoader interface {
	// Bootstrap enables every configured module in order, failing on the
	// first one that cannot be found, violates Definition, or errors.
	Bootstrap() error
	// Start starts enabled modules implementing Starter, in order.
	Start(ctx context.Context) error
	// Shutdown stops enabled modules in reverse order.
	Shutdown(ctx context.Context) error
}

// Base implements the injection half of Definition. Embed it and write
// Bootstrap.
type Base struct {
	app  Container
	name string
}

func (b *Base) SetApp(c Container)  { b.app = c }
func (b *Base) SetName(name string) { b.name = name }

// App returns the injected container, nil before SetApp.
func (b *Base) App() Container { return b.app }

// Name returns the configured identifier, empty before SetName.
func (b *Base) Name() string { return b.name }

package core

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Container Container
	Logger    *slog.Logger
	Loader    ModuleLoader
}

func NewApp(logger *slog.Logger, c Container, loader ModuleLoader) *App {
	return &App{
		Container: c,
		Logger:    logger,
		Loader:    loader,
	}
}

// Run enables all modules, blocks until ctx is done or the process is
// signalled, then shuts the modules down.
func (a *App) Run(ctx context.Context) error {
	// 1) Enable modules; the first failure aborts startup
	if err := a.Loader.Bootstrap(); err != nil {
		return err
	}
	if err := a.Loader.Start(ctx); err != nil {
		// modules started before the failure may already be serving
		if stopErr := a.shutdown(); stopErr != nil {
			a.Logger.Error("shutdown after failed start", "error", stopErr)
		}
		return err
	}
	a.Logger.Info("application started")

	// 2) Wait for signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case <-ctx.Done():
	case sig := <-stop:
		a.Logger.Info("signal received", "signal", sig.String())
	}

	// 3) give modules time to shutdown
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Loader.Shutdown(ctx)
}

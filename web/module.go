package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havennow/havennow/config"
	"github.com/havennow/havennow/core"
	"github.com/havennow/havennow/modular"
)

const Name = "web"

type Options struct {
	// Called during Bootstrap to register routes.
	Routes []func(r Router)
	// Optional additional middlewares.
	Middlewares []Handler
}

type Option func(*Options)

func WithRoutes(f func(r Router)) Option {
	return func(o *Options) { o.Routes = append(o.Routes, f) }
}

func WithMiddlewares(m ...Handler) Option {
	return func(o *Options) { o.Middlewares = append(o.Middlewares, m...) }
}

// Engine returns the gin engine published by the web module.
func Engine(c core.Container) (*gin.Engine, bool) {
	return core.Lookup[*gin.Engine](c)
}

// Module returns the factory for the web module. It needs config.Root and
// *slog.Logger in the container.
func Module(opts ...Option) modular.Factory {
	var options Options
	for _, o := range opts {
		o(&options)
	}
	return func(core.Container) core.Definition {
		return &Server{opts: options}
	}
}

// Server is the web module. Bootstrap builds the engine and binds the
// listener so address errors fail startup; later modules add routes during
// their own Bootstrap, and Start serves once the route table is complete.
type Server struct {
	core.Base
	opts     Options
	logger   *slog.Logger
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

var (
	_ core.Starter = (*Server)(nil)
	_ core.Stopper = (*Server)(nil)
)

func (m *Server) Bootstrap() (bool, error) {
	c := m.App()
	cfg := core.Get[config.Root](c)
	l := core.Get[*slog.Logger](c).With("module", m.Name())
	if report, ok := core.Lookup[*modular.Report](c); ok {
		l = l.With("run_id", report.RunID)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestID(l), RecoveryProblem(), AccessLog())
	r.Use(m.opts.Middlewares...)
	r.NoRoute(NoRouteProblem())

	for _, reg := range m.opts.Routes {
		reg(r)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return false, fmt.Errorf("web: listen %s: %w", srv.Addr, err)
	}

	core.Put[*gin.Engine](c, r)
	core.Put[*http.Server](c, srv)
	m.server, m.listener, m.logger = srv, ln, l
	return true, nil
}

func (m *Server) Start(_ context.Context) error {
	if m.server == nil {
		return errors.New("web: start before bootstrap")
	}
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		m.logger.Info("http server starting", "addr", m.Addr())
		if err := m.server.Serve(m.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("http server error", "error", err)
		}
	}()
	return nil
}

// Addr is the bound listen address, useful with ":0".
func (m *Server) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

func (m *Server) Stop(ctx context.Context) error {
	switch {
	case m.server == nil:
		return nil
	case m.done == nil:
		// bootstrapped but never served
		return m.listener.Close()
	}
	if err := m.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	<-m.done
	return nil
}

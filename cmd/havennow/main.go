package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/havennow/havennow/actuator"
	"github.com/havennow/havennow/breadcrumb"
	"github.com/havennow/havennow/config"
	"github.com/havennow/havennow/config/source"
	"github.com/havennow/havennow/core"
	"github.com/havennow/havennow/logging"
	"github.com/havennow/havennow/modular"
	"github.com/havennow/havennow/web"
)

func main() {
	ctx := context.Background()

	// 1) config: defaults < file < env < cli
	mgr, err := config.NewManager(ctx,
		&source.FileSource{BasePath: envOr("HAVENNOW_CONFIG_DIR", "configs"), Profile: os.Getenv("HAVENNOW_PROFILE")},
		&source.EnvSource{},
		&source.CLISource{},
	)
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	cfg := mgr.Config()

	// 2) logging; the level follows config reloads
	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(cfg.Logging.Level))
	logger := logging.NewLeveled(os.Stdout, cfg.Logging.Format, level).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
	)
	events := make(chan config.Event, 4)
	mgr.Subscribe(events)
	go logging.Follow(ctx, level, events, logger)
	go reloadOnHangup(ctx, mgr, logger)

	// 3) seed shared objects into the container
	c := core.NewContainer()
	core.Put[config.Root](c, cfg)
	core.Put[*slog.Logger](c, logger)

	// 4) modules compiled into the binary, addressable from modules.available
	res := modular.NewResolver(cfg.Modules.Namespace, cfg.Modules.Separator)
	reg := modular.NewRegistry()
	reg.Register(res.Locate(web.Name), web.Module(
		// routes registered by any module get a request trail
		web.WithMiddlewares(breadcrumb.Middleware()),
		web.WithRoutes(func(r web.Router) {
			r.GET("/hello", func(ctx *gin.Context) {
				ctx.JSON(http.StatusOK, gin.H{
					"message":     "world",
					"breadcrumbs": breadcrumb.From(ctx).Path(),
				})
			})
		}),
	))
	reg.Register(res.Locate(actuator.Name), actuator.Module(prometheus.DefaultGatherer))
	reg.Register(res.Locate(breadcrumb.Name), breadcrumb.Module())

	loader := modular.NewLoader(res, cfg.Modules.Available, reg, c,
		modular.WithLogger(logger),
		modular.WithMetrics(modular.NewMetrics(prometheus.DefaultRegisterer)),
	)

	// 5) run
	app := core.NewApp(logger, c, loader)
	if err := app.Run(ctx); err != nil {
		logger.Error("app error", "error", err)
		os.Exit(1)
	}
}

// reloadOnHangup re-reads configuration on SIGHUP. Module changes are only
// logged; they apply on the next start.
func reloadOnHangup(ctx context.Context, mgr *config.Manager, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			before := mgr.Config().Modules
			if err := mgr.Reload(ctx); err != nil {
				logger.Error("config reload failed", "error", err)
				continue
			}
			if !reflect.DeepEqual(before, mgr.Config().Modules) {
				logger.Warn("modules changed; restart to apply")
			}
			logger.Info("config reloaded")
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

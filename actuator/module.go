package actuator

import (
	"errors"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havennow/havennow/config"
	"github.com/havennow/havennow/core"
	"github.com/havennow/havennow/modular"
	"github.com/havennow/havennow/web"
)

const Name = "actuator"

var ErrNoEngine = errors.New("actuator: the web module must be enabled before actuator")

// Module returns the factory for the actuator module. Metrics are served from
// gatherer; nil means prometheus.DefaultGatherer.
func Module(gatherer prometheus.Gatherer) modular.Factory {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return func(core.Container) core.Definition {
		return &module{gatherer: gatherer}
	}
}

type module struct {
	core.Base
	gatherer prometheus.Gatherer
}

func (m *module) Bootstrap() (bool, error) {
	c := m.App()
	engine, ok := web.Engine(c)
	if !ok {
		return false, ErrNoEngine
	}
	cfg := core.Get[config.Root](c)

	group := engine.Group(cfg.Actuator.BasePath)

	group.GET("/health", func(ctx *gin.Context) {
		status, checks := health(c)
		code := http.StatusOK
		if status != "UP" {
			code = http.StatusServiceUnavailable
		}
		ctx.JSON(code, gin.H{"status": status, "checks": checks})
	})

	group.GET("/info", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"app": gin.H{
				"name":    cfg.App.Name,
				"version": cfg.App.Version,
			},
			"runtime": gin.H{
				"go":           runtime.Version(),
				"numGoroutine": runtime.NumGoroutine(),
				"time":         time.Now().UTC().Format(time.RFC3339),
				"pid":          os.Getpid(),
			},
		})
	})

	group.GET("/modules", func(ctx *gin.Context) {
		report, ok := core.Lookup[*modular.Report](c)
		if !ok {
			ctx.JSON(http.StatusOK, modular.Report{Modules: []modular.Enabled{}})
			return
		}
		ctx.JSON(http.StatusOK, report)
	})

	if cfg.Observability.Metrics.Enabled {
		// metrics path is absolute, not relative to the actuator group
		engine.GET(cfg.Observability.Metrics.Path, gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})))
	}

	return true, nil
}

// health is UP when every enabled module reported ready.
func health(c core.Container) (string, []gin.H) {
	checks := []gin.H{}
	report, ok := core.Lookup[*modular.Report](c)
	if !ok {
		return "UP", checks
	}
	status := "UP"
	for _, en := range report.Modules {
		s := "UP"
		if !en.Ready {
			s, status = "DOWN", "DOWN"
		}
		checks = append(checks, gin.H{"module": en.Name, "status": s})
	}
	return status, checks
}

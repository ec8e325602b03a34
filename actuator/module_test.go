package actuator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havennow/havennow/config"
	"github.com/havennow/havennow/core"
	"github.com/havennow/havennow/modular"
)

func setup(t *testing.T, metrics bool, report *modular.Report) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	c := core.NewContainer()
	core.Put[*gin.Engine](c, engine)
	core.Put[config.Root](c, config.Root{
		App:      config.AppInfo{Name: "havennow", Version: "1.2.3"},
		Actuator: config.ActuatorConfig{BasePath: "/actuator"},
		Observability: config.ObservabilityConfig{Metrics: config.MetricsConfig{
			Enabled: metrics,
			Path:    "/actuator/metrics",
		}},
	})
	if report != nil {
		core.Put[*modular.Report](c, report)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "actuator_test_total", Help: "test"}))

	def := Module(reg)(c)
	def.SetApp(c)
	def.SetName(Name)
	ready, err := def.Bootstrap()
	require.NoError(t, err)
	require.True(t, ready)
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestActuator_RequiresWebEngine(t *testing.T) {
	c := core.NewContainer()
	def := Module(nil)(c)
	def.SetApp(c)

	ready, err := def.Bootstrap()
	assert.False(t, ready)
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestActuator_HealthUp(t *testing.T) {
	engine := setup(t, false, &modular.Report{Modules: []modular.Enabled{
		{Name: "web", Ready: true},
	}})

	w := get(engine, "/actuator/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string              `json:"status"`
		Checks []map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UP", body.Status)
	assert.Equal(t, []map[string]string{{"module": "web", "status": "UP"}}, body.Checks)
}

func TestActuator_HealthDownWhenModuleNotReady(t *testing.T) {
	engine := setup(t, false, &modular.Report{Modules: []modular.Enabled{
		{Name: "web", Ready: true},
		{Name: "billing", Ready: false},
	}})

	w := get(engine, "/actuator/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"DOWN"`)
}

func TestActuator_Info(t *testing.T) {
	engine := setup(t, false, nil)

	w := get(engine, "/actuator/info")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "havennow", body["app"]["name"])
	assert.Equal(t, "1.2.3", body["app"]["version"])
	assert.NotEmpty(t, body["runtime"]["go"])
}

func TestActuator_Modules(t *testing.T) {
	engine := setup(t, false, &modular.Report{RunID: "run-1", Modules: []modular.Enabled{
		{Name: "web", Locator: `Havennow\Modules\Web\Module`, Ready: true},
	}})

	w := get(engine, "/actuator/modules")
	require.Equal(t, http.StatusOK, w.Code)

	var report modular.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "run-1", report.RunID)
	require.Len(t, report.Modules, 1)
	assert.Equal(t, `Havennow\Modules\Web\Module`, report.Modules[0].Locator)
}

func TestActuator_ModulesWithoutReport(t *testing.T) {
	engine := setup(t, false, nil)

	w := get(engine, "/actuator/modules")
	assert.JSONEq(t, `{"runId":"","modules":[]}`, w.Body.String())
}

func TestActuator_Metrics(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(setup(t, false, nil), "/actuator/metrics").Code)

	w := get(setup(t, true, nil), "/actuator/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "actuator_test_total")
}

package config

import "time"

type AppInfo struct {
	Name    string `config:"name" validate:"required"`
	Version string `config:"version" validate:"required"`
}

type LoggingConfig struct {
	Level  string `config:"level" validate:"oneof=debug info warn error"`
	Format string `config:"format" validate:"oneof=text json"`
}

type MetricsConfig struct {
	Enabled bool   `config:"enabled"`
	Path    string `config:"path"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `config:"metrics"`
}

type ActuatorConfig struct {
	BasePath string `config:"basePath"`
}

type ServerConfig struct {
	Addr         string        `config:"addr" validate:"required"`
	ReadTimeout  time.Duration `config:"readTimeout"`
	WriteTimeout time.Duration `config:"writeTimeout"`
	IdleTimeout  time.Duration `config:"idleTimeout"`
}

// ModulesConfig names the modules to enable at startup.
//
//	modules:
//	  namespace: 'Havennow\Modules'
//	  available:
//	    1: web
//	    2: actuator
//
// Modules are enabled in ascending key order. Identifiers must be unique.
type ModulesConfig struct {
	Namespace string         `config:"namespace" validate:"required"`
	Separator string         `config:"separator"`
	Available map[int]string `config:"available" validate:"unique,dive,required"`
}

type Root struct {
	App           AppInfo             `config:"app"`
	Server        ServerConfig        `config:"server"`
	Logging       LoggingConfig       `config:"logging"`
	Observability ObservabilityConfig `config:"observability"`
	Actuator      ActuatorConfig      `config:"actuator"`
	Modules       ModulesConfig       `config:"modules"`
}

// Defaults is the lowest-precedence layer under every other source.
func Defaults() MapSource {
	return MapSource{
		Label: "defaults",
		Data: map[string]any{
			"server": map[string]any{
				"addr":         ":8080",
				"readTimeout":  "10s",
				"writeTimeout": "10s",
				"idleTimeout":  "60s",
			},
			"logging": map[string]any{
				"level":  "info",
				"format": "text",
			},
			"observability": map[string]any{
				"metrics": map[string]any{
					"enabled": true,
					"path":    "/actuator/metrics",
				},
			},
			"actuator": map[string]any{
				"basePath": "/actuator",
			},
			"modules": map[string]any{
				"separator": `\`,
			},
		},
	}
}

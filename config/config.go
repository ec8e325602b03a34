package config

import "context"

// Source is a provider of configuration data.
//
// Implementations include the YAML file, environment and command-line
// sources in package source. Sources are read again on every Manager.Reload.
type Source interface {
	// Load retrieves configuration data as a string-keyed map. Nested maps
	// express hierarchy. The returned map belongs to the caller.
	Load(ctx context.Context) (map[string]any, error)

	// Name identifies the source in error messages, e.g. "file" or "env".
	Name() string
}

// MapSource serves a fixed map. Useful for defaults and tests.
type MapSource struct {
	Label string
	Data  map[string]any
}

func (m MapSource) Name() string {
	if m.Label == "" {
		return "map"
	}
	return m.Label
}

func (m MapSource) Load(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(m.Data))
	Merge(out, m.Data)
	return out, nil
}

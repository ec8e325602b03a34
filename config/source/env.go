package source

import (
	"context"
	"os"
	"strings"
)

// DefaultEnvPrefix is used when EnvSource.Prefix is empty.
const DefaultEnvPrefix = "HAVENNOW_"

// EnvSource loads configuration from prefixed environment variables.
//
// After the prefix is stripped the name is lower-cased and split on
// underscores into a nested path:
//
//	HAVENNOW_SERVER_ADDR=:9090          -> {server: {addr: ":9090"}}
//	HAVENNOW_MODULES_AVAILABLE_4=audit  -> {modules: {available: {"4": "audit"}}}
//
// Lower-cased keys still override camelCase ones from other layers, see
// config.Merge. All values are strings; the binder converts them. When a leaf and a
// branch collide (HAVENNOW_DB and HAVENNOW_DB_HOST) the first one seen wins.
type EnvSource struct {
	Prefix string
}

func (e *EnvSource) Name() string { return "env" }

// Load never fails.
func (e *EnvSource) Load(ctx context.Context) (map[string]any, error) {
	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return loadEnvVars(prefix, os.Environ()), nil
}

func loadEnvVars(prefix string, environ []string) map[string]any {
	result := make(map[string]any)
	for _, env := range environ {
		key, value, found := strings.Cut(env, "=")
		if !found || !strings.HasPrefix(key, prefix) {
			continue
		}
		key = strings.ToLower(strings.TrimPrefix(key, prefix))
		setNestedValue(result, strings.Split(key, "_"), value)
	}
	return result
}

// setNestedValue stores value at the path segments, skipping empty
// segments. A leaf and a branch never replace each other.
func setNestedValue(m map[string]any, segments []string, value string) {
	path := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			path = append(path, s)
		}
	}
	if len(path) == 0 {
		return
	}

	current := m
	for _, segment := range path[:len(path)-1] {
		existing, exists := current[segment]
		if !exists {
			nested := make(map[string]any)
			current[segment] = nested
			current = nested
			continue
		}
		nested, ok := existing.(map[string]any)
		if !ok {
			return
		}
		current = nested
	}
	leaf := path[len(path)-1]
	if _, isBranch := current[leaf].(map[string]any); isBranch {
		return
	}
	current[leaf] = value
}

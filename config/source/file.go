package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/havennow/havennow/config"
)

// FileSource loads configuration from YAML files on the filesystem.
//
// The base file is application.yaml (or .yml) in BasePath. When Profile is
// set, application.{Profile}.yaml is deep-merged over it if present.
//
//	configs/
//	  application.yaml
//	  application.prod.yaml
type FileSource struct {
	// BasePath is the directory holding the configuration files.
	BasePath string

	// Profile selects an optional overlay. A missing overlay is ignored.
	Profile string
}

func (f *FileSource) Name() string { return "file" }

// Load returns os.ErrNotExist (wrapped) if the base file is missing.
func (f *FileSource) Load(ctx context.Context) (map[string]any, error) {
	baseFile := findYAMLFile(f.BasePath, "application")
	if baseFile == "" {
		return nil, fmt.Errorf("no application.yaml in %q: %w", f.BasePath, os.ErrNotExist)
	}

	data, err := readYAML(baseFile)
	if err != nil {
		return nil, err
	}

	if f.Profile != "" {
		if profileFile := findYAMLFile(f.BasePath, "application."+f.Profile); profileFile != "" {
			overlay, err := readYAML(profileFile)
			if err != nil {
				return nil, err
			}
			config.Merge(data, overlay)
		}
	}

	return data, nil
}

func findYAMLFile(dir, basename string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, basename+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func readYAML(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(out), nil
}

// normalize rewrites the map[any]any yaml.v3 produces for non-string keys
// (such as the integer sort keys of modules.available) into map[string]any
// so every source merges on the same shape.
func normalize(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalize(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}

package config

import (
	"context"
	"fmt"
)

// LoadInto merges sources in order, later ones overriding earlier ones,
// then binds and validates the result into target.
func LoadInto(ctx context.Context, target any, sources ...Source) error {
	merged := map[string]any{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		vals, err := src.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", src.Name(), err)
		}
		Merge(merged, vals)
	}

	if err := NewBinder().Bind(merged, target); err != nil {
		return fmt.Errorf("failed to bind config: %w", err)
	}
	return nil
}

// Load builds a Root from Defaults overlaid with sources.
func Load(ctx context.Context, sources ...Source) (Root, error) {
	var cfg Root
	layers := append([]Source{Defaults()}, sources...)
	if err := LoadInto(ctx, &cfg, layers...); err != nil {
		return Root{}, err
	}
	return cfg, nil
}

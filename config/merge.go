package config

import "strings"

// Merge deep-merges src into dst. Nested maps are merged key by key;
// any other value in src replaces the one in dst. Maps from src are copied
// so dst never aliases src.
//
// Keys match case-insensitively and dst keeps its spelling, so an env
// override such as server.readtimeout replaces server.readTimeout.
func Merge(dst, src map[string]any) {
	for k, v := range src {
		k = matchKey(dst, k)
		if mv, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				Merge(existing, mv)
				continue
			}
			cp := make(map[string]any, len(mv))
			Merge(cp, mv)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

func matchKey(m map[string]any, k string) string {
	if _, ok := m[k]; ok {
		return k
	}
	for existing := range m {
		if strings.EqualFold(existing, k) {
			return existing
		}
	}
	return k
}

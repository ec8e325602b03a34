package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffEvent(t *testing.T) {
	t.Parallel()

	old := Root{
		Logging: LoggingConfig{Level: "info"},
		Modules: ModulesConfig{Available: map[int]string{1: "web"}},
	}

	tests := []struct {
		name string
		new  Root
		want []string
	}{
		{name: "identical", new: old, want: nil},
		{
			name: "one section",
			new: Root{
				Logging: LoggingConfig{Level: "debug"},
				Modules: ModulesConfig{Available: map[int]string{1: "web"}},
			},
			want: []string{"logging"},
		},
		{
			name: "keys in field order",
			new: Root{
				Server:  ServerConfig{Addr: ":9090"},
				Logging: LoggingConfig{Level: "info"},
				Modules: ModulesConfig{Available: map[int]string{1: "web", 2: "actuator"}},
			},
			want: []string{"server", "modules"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			evt := diffEvent(old, tt.new)
			assert.Equal(t, tt.want, evt.ChangedKeys)
			assert.Equal(t, tt.new, evt.New)
		})
	}
}

package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havennow/havennow/config"
)

// switchable serves whatever data currently holds.
type switchable struct {
	data map[string]any
	err  error
}

func (s *switchable) Name() string { return "switchable" }
func (s *switchable) Load(ctx context.Context) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return config.MapSource{Data: s.data}.Load(ctx)
}

func withLevel(level string) map[string]any {
	return map[string]any{"logging": map[string]any{"level": level}}
}

func newManager(t *testing.T) (*config.Manager, *switchable) {
	t.Helper()
	src := &switchable{data: withLevel("info")}
	m, err := config.NewManager(context.Background(), base(), src)
	require.NoError(t, err)
	return m, src
}

func TestNewManager_InitialLoad(t *testing.T) {
	m, _ := newManager(t)

	cfg := m.Config()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, map[int]string{1: "web", 2: "actuator"}, cfg.Modules.Available)
}

func TestNewManager_InvalidInitialConfig(t *testing.T) {
	_, err := config.NewManager(context.Background(), base(), config.MapSource{Data: withLevel("chatty")})

	var be *config.BindError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "validate", be.Stage)
}

func TestManager_ReloadNotifiesChangedKeys(t *testing.T) {
	m, src := newManager(t)
	events := make(chan config.Event, 1)
	m.Subscribe(events)

	src.data = withLevel("debug")
	require.NoError(t, m.Reload(context.Background()))

	assert.Equal(t, "debug", m.Config().Logging.Level)
	select {
	case evt := <-events:
		assert.Equal(t, []string{"logging"}, evt.ChangedKeys)
		assert.True(t, evt.Changed("logging"))
		assert.False(t, evt.Changed("modules"))
		assert.Equal(t, "info", evt.Old.Logging.Level)
		assert.Equal(t, "debug", evt.New.Logging.Level)
	case <-time.After(time.Second):
		t.Fatal("no change event")
	}
}

func TestManager_ReloadWithoutChangeIsSilent(t *testing.T) {
	m, _ := newManager(t)
	events := make(chan config.Event, 1)
	m.Subscribe(events)

	require.NoError(t, m.Reload(context.Background()))
	assert.Empty(t, events)
}

func TestManager_FailedReloadKeepsConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*switchable)
	}{
		{name: "invalid value", mutate: func(s *switchable) { s.data = withLevel("chatty") }},
		{name: "source error", mutate: func(s *switchable) { s.err = errors.New("disk gone") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, src := newManager(t)
			events := make(chan config.Event, 1)
			m.Subscribe(events)

			tt.mutate(src)
			assert.Error(t, m.Reload(context.Background()))
			assert.Equal(t, "info", m.Config().Logging.Level)
			assert.Empty(t, events)
		})
	}
}

func TestManager_FullSubscriberDoesNotBlock(t *testing.T) {
	m, src := newManager(t)
	full := make(chan config.Event)
	m.Subscribe(full)

	src.data = withLevel("warn")
	require.NoError(t, m.Reload(context.Background()))
	assert.Equal(t, "warn", m.Config().Logging.Level)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"corestudio/internal/eventbus"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	bus := eventbus.New(nil)
	var loaded eventbus.ConfigLoadedEvent
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded = e.(eventbus.ConfigLoadedEvent)
	})

	cfg, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, eventbus.ConfigLoadedEvent{Path: path, Defaults: true}, loaded)
	assert.Equal(t, 900*time.Millisecond, cfg.Scroll.Animation())
	assert.Equal(t, 350*time.Millisecond, cfg.Scroll.Settle())
	assert.Equal(t, 700*time.Millisecond, cfg.Scroll.StageCooldown())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[scroll]
wheel_threshold = 60

[ui]
locale = "it"
`), 0644))

	bus := eventbus.New(nil)
	var loaded eventbus.ConfigLoadedEvent
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		loaded = e.(eventbus.ConfigLoadedEvent)
	})

	cfg, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)
	assert.Equal(t, eventbus.ConfigLoadedEvent{Path: path}, loaded)
	assert.Equal(t, 60.0, cfg.Scroll.WheelThreshold)
	assert.Equal(t, 45.0, cfg.Scroll.TouchThreshold)
	assert.Equal(t, "it", cfg.UI.Locale)
	assert.True(t, cfg.UI.ShowHelp)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigService(path)
	cfg := DefaultConfig()
	cfg.UI.Locale = "es"
	cfg.Scroll.StageCooldownMS = 500

	require.NoError(t, svc.Save(cfg))
	got, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scroll.WheelThreshold = 0
	cfg.Scroll.SettleMS = -1
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[scroll]\ntouch_threshold = -4\n"), 0644))

	_, err := NewConfigService(path).Load()
	assert.ErrorContains(t, err, "touch_threshold")

	require.NoError(t, os.WriteFile(path, []byte("[scroll\n"), 0644))
	_, err = NewConfigService(path).Load()
	assert.ErrorContains(t, err, "failed to parse config")
}

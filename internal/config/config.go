package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"corestudio/internal/eventbus"
)

// FileName is the default configuration file name
const FileName = ".corestudio.toml"

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Scroll  ScrollSettings `toml:"scroll"`
	UI      UISettings     `toml:"ui"`
	Log     LogSettings    `toml:"log"`
}

// ScrollSettings holds the paging thresholds and cooldowns
type ScrollSettings struct {
	WheelThreshold  float64 `toml:"wheel_threshold"`
	TouchThreshold  float64 `toml:"touch_threshold"`
	TouchJitter     float64 `toml:"touch_jitter"`
	AnimationMS     int     `toml:"animation_ms"`
	SettleMS        int     `toml:"settle_ms"`
	StageCooldownMS int     `toml:"stage_cooldown_ms"`
	// WheelLineDelta is the pixel delta one terminal wheel notch stands for
	WheelLineDelta float64 `toml:"wheel_line_delta"`
	// CellHeightPX converts terminal rows into pixels for drag gestures
	CellHeightPX float64 `toml:"cell_height_px"`
	// HorizontalDelta is the pixel delta of one horizontal wheel notch
	HorizontalDelta float64 `toml:"horizontal_delta"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Locale     string `toml:"locale"`
	LocaleFile string `toml:"locale_file"`
	ShowHelp   bool   `toml:"show_help"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Animation returns the section scroll animation length
func (s ScrollSettings) Animation() time.Duration {
	return time.Duration(s.AnimationMS) * time.Millisecond
}

// Settle returns the buffer added after the scroll animation
func (s ScrollSettings) Settle() time.Duration {
	return time.Duration(s.SettleMS) * time.Millisecond
}

// StageCooldown returns the cooldown after a stage step
func (s ScrollSettings) StageCooldown() time.Duration {
	return time.Duration(s.StageCooldownMS) * time.Millisecond
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var err error
	positive := func(name string, v float64) {
		if v <= 0 {
			err = multierr.Append(err, fmt.Errorf("scroll.%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			err = multierr.Append(err, fmt.Errorf("scroll.%s must not be negative, got %d", name, v))
		}
	}
	positive("wheel_threshold", c.Scroll.WheelThreshold)
	positive("touch_threshold", c.Scroll.TouchThreshold)
	positive("wheel_line_delta", c.Scroll.WheelLineDelta)
	positive("cell_height_px", c.Scroll.CellHeightPX)
	positive("horizontal_delta", c.Scroll.HorizontalDelta)
	if c.Scroll.TouchJitter < 0 {
		err = multierr.Append(err, fmt.Errorf("scroll.touch_jitter must not be negative, got %v", c.Scroll.TouchJitter))
	}
	nonNegative("animation_ms", c.Scroll.AnimationMS)
	nonNegative("settle_ms", c.Scroll.SettleMS)
	nonNegative("stage_cooldown_ms", c.Scroll.StageCooldownMS)

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service reading the given file.
// An empty path selects FileName in the user's config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		path = filepath.Join(configDir, "corestudio", FileName)
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file, falling back to defaults when
// the file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	defaults := errors.Is(err, os.ErrNotExist)
	if defaults {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Defaults: defaults})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Settings missing
// from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scroll: ScrollSettings{
			WheelThreshold:  40,
			TouchThreshold:  45,
			TouchJitter:     2,
			AnimationMS:     900,
			SettleMS:        350,
			StageCooldownMS: 700,
			WheelLineDelta:  48,
			CellHeightPX:    18,
			HorizontalDelta: 60,
		},
		UI: UISettings{
			ShowHelp: true,
		},
		Log: LogSettings{
			Level: "info",
			File:  "corestudio.log",
		},
	}
}

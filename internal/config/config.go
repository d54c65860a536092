// Package config loads and validates the nachod configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "5s" or "1m", or from integer milliseconds.
// A value of "0" or 0 means never expire.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Integer values are milliseconds, matching the wire protocol unit.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the configuration for nachod.
// Loaded from ~/.config/nacho/nachod.toml
type Config struct {
	Display  DisplayConfig `toml:"display"`
	Timeouts TimeoutConfig `toml:"timeouts"`
	Audio    AudioConfig   `toml:"audio"`
	WM       WMConfig      `toml:"wm"`
}

// DisplayConfig contains popup geometry settings. Padding and
// ScreenHeightThreshold are read once at startup and are not affected by
// config hot reload.
type DisplayConfig struct {
	Width         int `toml:"width"`          // Popup width in pixels
	Padding       int `toml:"padding"`        // Gap between stacked popups and above the first one
	HeightLimit   int `toml:"height_limit"`   // Stack offsets at or past this are forced closed
	DefaultHeight int `toml:"default_height"` // Assumed height for surfaces that have not reported one
}

// TimeoutConfig contains server-default expiry timeouts per urgency level.
// These apply when a client requests a negative expire timeout.
// A value of "0" or 0 means never expire.
type TimeoutConfig struct {
	Low      Duration `toml:"low"`
	Normal   Duration `toml:"normal"`
	Critical Duration `toml:"critical"`
}

// AudioConfig contains notification sound settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-urgency sound file paths.
type SoundConfig struct {
	Low      string `toml:"low"`
	Normal   string `toml:"normal"`
	Critical string `toml:"critical"`
}

// WMConfig contains window-manager interaction settings.
type WMConfig struct {
	CommandTimeout Duration `toml:"command_timeout"` // Upper bound on a single hyprctl call
	KeyDelay       Duration `toml:"key_delay"`       // Pause between focusing and injecting keys
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:         350,
			Padding:       10,
			HeightLimit:   800,
			DefaultHeight: 100,
		},
		Timeouts: TimeoutConfig{
			Low:      Duration(5 * time.Second),
			Normal:   Duration(5 * time.Second),
			Critical: Duration(0), // Never expires
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  80,
			Sounds:  SoundConfig{},
		},
		WM: WMConfig{
			CommandTimeout: Duration(2 * time.Second),
			KeyDelay:       Duration(100 * time.Millisecond),
		},
	}
}

// Path returns the path to the nachod config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nacho", "nachod.toml"), nil
}

// Load loads the configuration from disk.
// If the file doesn't exist, returns the default configuration.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads the configuration from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", c.Display.Padding)
	}
	if c.Display.HeightLimit <= 0 {
		return fmt.Errorf("height_limit must be positive, got %d", c.Display.HeightLimit)
	}
	if c.Display.DefaultHeight <= 0 {
		return fmt.Errorf("default_height must be positive, got %d", c.Display.DefaultHeight)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	if c.WM.CommandTimeout.Duration() <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.WM.CommandTimeout.Duration())
	}
	return nil
}

// TimeoutForUrgency returns the server-default expiry for the given urgency
// level. Zero means never expire.
func (c *Config) TimeoutForUrgency(urgency int) time.Duration {
	switch urgency {
	case 0: // Low
		return c.Timeouts.Low.Duration()
	case 2: // Critical
		return c.Timeouts.Critical.Duration()
	default: // Normal (1) or unknown
		return c.Timeouts.Normal.Duration()
	}
}

// SoundForUrgency returns the sound file path for the given urgency level.
// Expands ~ to home directory.
func (c *Config) SoundForUrgency(urgency int) string {
	var path string
	switch urgency {
	case 0: // Low
		path = c.Audio.Sounds.Low
	case 2: // Critical
		path = c.Audio.Sounds.Critical
	default: // Normal (1) or unknown
		path = c.Audio.Sounds.Normal
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

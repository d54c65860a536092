package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"5000", 5 * time.Second, false},
		{"0", 0, false},
		{"250", 250 * time.Millisecond, false},
		{"5s", 5 * time.Second, false},
		{"1m", time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"forever", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 350, cfg.Display.Width)
	assert.Equal(t, 10, cfg.Display.Padding)
	assert.Equal(t, 800, cfg.Display.HeightLimit)
	assert.Equal(t, 100, cfg.Display.DefaultHeight)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Equal(t, time.Duration(0), cfg.Timeouts.Critical.Duration())
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nachod.toml")
	content := `
[display]
width = 420

[timeouts]
normal = "10s"
critical = "2500"

[audio]
enabled = false

[wm]
key_delay = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 420, cfg.Display.Width)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 10, cfg.Display.Padding)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeouts.Critical.Duration())
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.WM.KeyDelay.Duration())
	assert.Equal(t, 2*time.Second, cfg.WM.CommandTimeout.Duration())
}

func TestLoadFileInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nachod.toml")
	require.NoError(t, os.WriteFile(path, []byte("display = nonsense ["), 0600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"width too small", func(c *Config) { c.Display.Width = 50 }},
		{"width too large", func(c *Config) { c.Display.Width = 5000 }},
		{"negative padding", func(c *Config) { c.Display.Padding = -1 }},
		{"zero height limit", func(c *Config) { c.Display.HeightLimit = 0 }},
		{"zero default height", func(c *Config) { c.Display.DefaultHeight = 0 }},
		{"volume out of range", func(c *Config) { c.Audio.Volume = 150 }},
		{"zero command timeout", func(c *Config) { c.WM.CommandTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTimeoutForUrgency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeouts.Low = Duration(3 * time.Second)
	cfg.Timeouts.Normal = Duration(5 * time.Second)
	cfg.Timeouts.Critical = Duration(0)

	assert.Equal(t, 3*time.Second, cfg.TimeoutForUrgency(0))
	assert.Equal(t, 5*time.Second, cfg.TimeoutForUrgency(1))
	assert.Equal(t, time.Duration(0), cfg.TimeoutForUrgency(2))
	// Unknown urgency falls back to normal.
	assert.Equal(t, 5*time.Second, cfg.TimeoutForUrgency(9))
}

func TestSoundForUrgency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audio.Sounds.Low = "/sounds/low.ogg"
	cfg.Audio.Sounds.Normal = "~/sounds/normal.ogg"
	cfg.Audio.Sounds.Critical = ""

	assert.Equal(t, "/sounds/low.ogg", cfg.SoundForUrgency(0))
	assert.Equal(t, "", cfg.SoundForUrgency(2))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds/normal.ogg"), cfg.SoundForUrgency(1))
}

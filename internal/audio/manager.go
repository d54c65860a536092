package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/model"
)

// Manager plays notification sounds selected by urgency or by an explicit
// hint. A config swap takes effect on the next played sound.
type Manager struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	cfg    *config.Config
}

// NewManager creates an audio manager and preloads the configured sounds.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger: logger,
		player: NewPlayer(logger),
		cfg:    cfg,
	}
	m.applyConfig()
	return m
}

// applyConfig pushes volume to the player and preloads the per-urgency
// sounds that exist on disk.
func (m *Manager) applyConfig() {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	for _, urgency := range []int{model.UrgencyLow, model.UrgencyNormal, model.UrgencyCritical} {
		path := cfg.SoundForUrgency(urgency)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "urgency", urgency, "path", path)
			continue
		}
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
	}
}

// PlayForUrgency plays the sound configured for the urgency level. Missing
// configuration is not an error.
func (m *Manager) PlayForUrgency(urgency int) error {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	if !cfg.Audio.Enabled {
		return nil
	}
	return m.player.Play(cfg.SoundForUrgency(urgency))
}

// PlayFile plays a specific sound file, typically from a sound-file hint.
func (m *Manager) PlayFile(path string) error {
	m.mu.RLock()
	enabled := m.cfg.Audio.Enabled
	m.mu.RUnlock()

	if !enabled {
		return nil
	}
	return m.player.Play(path)
}

// UpdateConfig swaps the configuration, drops the decode cache and
// preloads the new sounds. Called on config hot reload.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()

	m.player.ClearCache()
	m.applyConfig()
	m.logger.Debug("audio config updated")
}

// Close releases the player and the speaker.
func (m *Manager) Close() {
	m.player.Close()
}

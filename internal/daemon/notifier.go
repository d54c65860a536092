package daemon

import (
	"log/slog"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/ndev51/nacho/internal/dbus"
)

// Level indicates the severity of an internal notification.
type Level int

const (
	// LevelInfo maps to low urgency.
	LevelInfo Level = iota
	// LevelWarning maps to normal urgency.
	LevelWarning
	// LevelError maps to critical urgency.
	LevelError
)

// InternalNotifier sends notifications about nachod's own events through
// the regular notify path. Same-key notifications are rate limited so a
// broken config file cannot flood the screen.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	notifyHandler dbus.NotifyHandler

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
}

// NewInternalNotifier creates an InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
	}
}

// SetNotifyHandler sets the handler used to register the notification. It
// is the same handler the D-Bus server calls for client notifications.
func (n *InternalNotifier) SetNotifyHandler(handler dbus.NotifyHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// Notify sends an internal notification unless the same key fired within
// the rate-limit interval.
func (n *InternalNotifier) Notify(key, summary, body string, level Level) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.notifyHandler == nil {
		n.logger.Debug("internal notification skipped, no handler", "summary", summary)
		return
	}

	if last, ok := n.lastNotifyTime[key]; ok && time.Since(last) < n.minInterval {
		n.logger.Debug("internal notification rate-limited", "key", key)
		return
	}
	n.lastNotifyTime[key] = time.Now()

	urgency := byte(1)
	icon := "dialog-warning"
	switch level {
	case LevelInfo:
		urgency = 0
		icon = "dialog-information"
	case LevelError:
		urgency = 2
		icon = "dialog-error"
	}

	notification := &dbus.Notification{
		AppName: "nachod",
		AppIcon: icon,
		Summary: summary,
		Body:    body,
		Hints: map[string]godbus.Variant{
			"urgency":        godbus.MakeVariant(urgency),
			"transient":      godbus.MakeVariant(true),
			"suppress-sound": godbus.MakeVariant(true),
		},
		ExpireTimeout: 5000,
	}

	n.logger.Debug("sending internal notification", "key", key, "summary", summary)
	_ = n.notifyHandler(notification)
}

// NotifyStartup announces that the daemon is running.
func (n *InternalNotifier) NotifyStartup(version string) {
	n.Notify("startup", "nachod started",
		"Notification daemon v"+version+" is now running.", LevelInfo)
}

// NotifyConfigReloaded announces a successful config reload.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded",
		"nachod configuration has been reloaded.", LevelInfo)
}

// NotifyConfigError announces a config file that failed to load.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration error",
		"Failed to reload configuration: "+err.Error(), LevelWarning)
}

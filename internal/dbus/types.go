package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/ndev51/nacho/internal/model"
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired, either because
	// its timeout was reached or because it was pushed off-screen.
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via
	// CloseNotification or replaced by a newer request.
	CloseReasonClosed CloseReason = 3
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Notification represents an incoming Notify call.
// It contains the raw parameters from the org.freedesktop.Notifications.Notify method.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs; an incomplete
// trailing pair is ignored.
func (n *Notification) ParsedActions() []model.Action {
	actions := make([]model.Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, model.Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// Urgency extracts the urgency hint from the notification.
// Returns model.UrgencyNormal if not specified.
func (n *Notification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return model.UrgencyNormal
}

// SoundFile extracts the sound-file hint.
func (n *Notification) SoundFile() string {
	if v, ok := n.Hints["sound-file"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// SuppressSound returns true if the suppress-sound hint is set.
func (n *Notification) SuppressSound() bool {
	if v, ok := n.Hints["suppress-sound"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// ImageDataKey returns the hints key carrying raw image data, or "".
// Both spellings are seen in the wild; image-data is the spec 1.2 name and
// icon_data the pre-1.1 one.
func (n *Notification) ImageDataKey() string {
	if _, ok := n.Hints["image-data"]; ok {
		return "image-data"
	}
	if _, ok := n.Hints["icon_data"]; ok {
		return "icon_data"
	}
	return ""
}

// ServerCapabilities lists the capabilities advertised by nachod.
var ServerCapabilities = []string{
	"body",
	"actions",
	"action-icons",
	"body-hyperlinks",
	"body-images",
	"body-markup",
	"icon-multi",
	"icon-static",
	"persistence",
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "nachod",
		Vendor:      "ndev51",
		Version:     "0.0.1", // Replaced by the build-time version
		SpecVersion: "1.2",
	}
}

package session

import (
	"time"

	"github.com/ndev51/nacho/internal/dbus"
	"github.com/ndev51/nacho/internal/model"
)

// Record is the server-side state for one live notification. All fields
// except StackOffset and Surface are immutable after construction.
type Record struct {
	ID      uint32
	AppName string
	Content model.Content
	Actions []model.Action
	Urgency int

	// IconPayload is produced by an external parser; the session core never
	// interprets its bytes.
	IconPayload []byte

	// ExpireTimeout is the resolved expiry duration. Zero means the record
	// never auto-expires and no timer is armed for it.
	ExpireTimeout time.Duration

	// StackOffset is the vertical position in display units. It is owned by
	// the stacking engine and recomputed in full on every table mutation.
	StackOffset int

	// Surface is the rendered popup, held by reference. It may be nil when
	// surface creation failed; the record still participates in stacking
	// with the default height.
	Surface Surface

	CreatedAt time.Time
}

// newRecord builds a Record from an incoming request. Malformed optional
// fields degrade to defaults rather than erroring: the notify operation has
// no error-return channel.
func newRecord(id uint32, n *dbus.Notification, serverDefault time.Duration) *Record {
	return &Record{
		ID:            id,
		AppName:       n.AppName,
		Content:       model.ParseContent(n.AppName, n.Summary, n.Body),
		Actions:       n.ParsedActions(),
		Urgency:       n.Urgency(),
		ExpireTimeout: resolveTimeout(n.ExpireTimeout, serverDefault),
		CreatedAt:     time.Now(),
	}
}

// resolveTimeout maps the wire-level expire_timeout to a duration. A negative
// value selects the server default, zero disables expiry. Millisecond
// precision is preserved; sub-second timeouts arm sub-second timers.
func resolveTimeout(requested int32, serverDefault time.Duration) time.Duration {
	switch {
	case requested < 0:
		return serverDefault
	case requested == 0:
		return 0
	default:
		return time.Duration(requested) * time.Millisecond
	}
}

package session

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/dbus"
)

// Surface is the rendered visual representation of a notification, owned by
// the display collaborator. Height may report 0 until the surface finishes
// layout; Destroy is idempotent.
type Surface interface {
	Height() int
	SetOffset(top int)
	Destroy()
}

// SurfaceFactory creates surfaces for new records. Creation failure is not
// fatal: the record is registered with a nil surface and the default height.
type SurfaceFactory interface {
	Create(rec *Record) (Surface, error)
}

// Events receives the outbound notification events. Each record leaving the
// table produces exactly one NotificationClosed call.
type Events interface {
	ActionInvoked(id uint32, actionKey string)
	NotificationClosed(id uint32, reason dbus.CloseReason)
}

// Dispatcher routes an invoked action to its external side effects. The
// dispatch is advisory: it must return promptly and never surface failures
// into the session state machine.
type Dispatcher interface {
	Dispatch(rec *Record, actionKey string)
}

// IconParser turns an incoming request into an opaque icon payload.
type IconParser func(n *dbus.Notification) []byte

// Manager composes the session table, stacking engine and expiry scheduler
// behind the four service operations. One mutex guards every table mutation
// together with its restack pass, which is the sole deduplication guard for
// close events.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	surfaces   SurfaceFactory
	events     Events
	dispatcher Dispatcher
	icons      IconParser

	// lastID never resets and never reuses a value within a process
	// lifetime.
	lastID atomic.Uint32

	mu    sync.Mutex
	table *Table
	sched *Scheduler
}

// NewManager creates a session manager with an empty table.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:    cfg,
		logger: logger,
		table:  NewTable(),
		sched:  NewScheduler(),
	}
}

// SetSurfaceFactory sets the popup surface collaborator.
func (m *Manager) SetSurfaceFactory(f SurfaceFactory) {
	m.surfaces = f
}

// SetEvents sets the outbound event sink.
func (m *Manager) SetEvents(e Events) {
	m.events = e
}

// SetDispatcher sets the action router.
func (m *Manager) SetDispatcher(d Dispatcher) {
	m.dispatcher = d
}

// SetIconParser sets the icon payload parser.
func (m *Manager) SetIconParser(p IconParser) {
	m.icons = p
}

// Notify registers a new notification and returns its id. It never fails:
// malformed optional fields degrade to defaults. A non-zero ReplacesID
// closes the replaced record with reason closed-by-request; the new record
// always gets a fresh id.
func (m *Manager) Notify(n *dbus.Notification) uint32 {
	id := m.lastID.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()

	rec := newRecord(id, n, m.cfg.TimeoutForUrgency(n.Urgency()))
	if m.icons != nil {
		rec.IconPayload = m.icons(n)
	}

	if m.surfaces != nil {
		surface, err := m.surfaces.Create(rec)
		if err != nil {
			m.logger.Warn("surface creation failed, using default height",
				"id", id, "error", err)
		} else {
			rec.Surface = surface
		}
	}

	if n.ReplacesID != 0 {
		if old, ok := m.table.Remove(n.ReplacesID); ok {
			m.finalizeLocked(old, dbus.CloseReasonClosed)
		}
	}

	m.table.Insert(rec)

	forced := m.restackLocked()
	newRecordForced := false
	for _, f := range forced {
		if f.ID == id {
			newRecordForced = true
		}
		m.finalizeLocked(f, dbus.CloseReasonExpired)
	}

	if !newRecordForced {
		m.sched.Arm(id, rec.ExpireTimeout, func() {
			m.Close(id, dbus.CloseReasonExpired)
		})
	}

	m.logger.Debug("notification registered",
		"id", id,
		"app_name", rec.AppName,
		"stack_offset", rec.StackOffset,
		"expire_timeout", rec.ExpireTimeout,
		"visible", m.table.Len(),
	)
	return id
}

// Close removes the notification, cancels its timer, tears down its surface
// and emits exactly one NotificationClosed event with the given reason.
// Closing an absent id is a no-op and returns false.
func (m *Manager) Close(id uint32, reason dbus.CloseReason) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.table.Remove(id)
	if !ok {
		return false
	}
	m.finalizeLocked(rec, reason)

	for _, f := range m.restackLocked() {
		m.finalizeLocked(f, dbus.CloseReasonExpired)
	}
	return true
}

// InvokeAction routes the user-invoked action for id, emits the
// action-invoked event and closes the notification as dismissed. An unknown
// id is a no-op producing no events.
func (m *Manager) InvokeAction(id uint32, actionKey string) {
	rec, ok := m.table.Get(id)
	if !ok {
		m.logger.Debug("action on unknown notification", "id", id, "action_key", actionKey)
		return
	}

	if m.dispatcher != nil {
		m.dispatcher.Dispatch(rec, actionKey)
	}
	if m.events != nil {
		m.events.ActionInvoked(id, actionKey)
	}
	m.Close(id, dbus.CloseReasonDismissed)
}

// CloseAll closes every live notification with the given reason.
func (m *Manager) CloseAll(reason dbus.CloseReason) {
	for _, rec := range m.table.Snapshot() {
		m.Close(rec.ID, reason)
	}
}

// UpdateConfig adopts new timeout and audio settings from a reloaded
// config. Display geometry stays fixed for the process lifetime; reloaded
// geometry values are ignored.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := *cfg
	next.Display = m.cfg.Display
	m.cfg = &next
}

// ActiveCount returns the number of live notifications.
func (m *Manager) ActiveCount() int {
	return m.table.Len()
}

// Get returns the live record for id, if any.
func (m *Manager) Get(id uint32) (*Record, bool) {
	return m.table.Get(id)
}

// finalizeLocked completes the departure of a record that has already been
// removed from the table: timer cancelled first, then the surface torn down,
// then the single closed event. Caller must hold m.mu.
func (m *Manager) finalizeLocked(rec *Record, reason dbus.CloseReason) {
	m.sched.Cancel(rec.ID)
	if rec.Surface != nil {
		rec.Surface.Destroy()
	}
	if m.events != nil {
		m.events.NotificationClosed(rec.ID, reason)
	}
	m.logger.Debug("notification closed", "id", rec.ID, "reason", reason.String())
}

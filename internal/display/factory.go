package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/session"
)

// Factory builds popup surfaces on the GTK application. Implements
// session.SurfaceFactory.
type Factory struct {
	app    *gtk.Application
	cfg    *config.Config
	logger *slog.Logger

	onAction  func(id uint32, actionKey string)
	onDismiss func(id uint32)
}

// NewFactory creates a surface factory bound to the GTK application.
// onAction fires when the user clicks an action button; onDismiss fires
// when the user clicks the popup body.
func NewFactory(app *gtk.Application, cfg *config.Config, logger *slog.Logger, onAction func(id uint32, actionKey string), onDismiss func(id uint32)) *Factory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		app:       app,
		cfg:       cfg,
		logger:    logger,
		onAction:  onAction,
		onDismiss: onDismiss,
	}
}

// Create snapshots the record and schedules the window build on the GTK
// main loop. It returns immediately; the surface reports the default height
// until the window is mapped.
func (f *Factory) Create(rec *session.Record) (session.Surface, error) {
	p := &Popup{
		cfg:       f.cfg,
		logger:    f.logger,
		onAction:  f.onAction,
		onDismiss: f.onDismiss,
	}
	snapshotRecord(p, rec)

	glib.IdleAdd(func() {
		p.realize(f.app)
	})
	return p, nil
}

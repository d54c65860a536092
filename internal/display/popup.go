package display

import (
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdkpixbuf/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/model"
	"github.com/ndev51/nacho/internal/session"
)

// Popup is one notification surface. GTK widgets are touched only on the
// main loop; cross-goroutine state lives in atomics.
type Popup struct {
	id       uint32
	title    string
	subtitle string
	body     string
	actions  []model.Action
	urgency  int
	icon     []byte

	cfg    *config.Config
	logger *slog.Logger

	onAction  func(id uint32, actionKey string)
	onDismiss func(id uint32)

	window *gtk.Window

	height    atomic.Int32
	offset    atomic.Int32
	destroyed atomic.Bool
}

// Height reports the surface's allocated height, or 0 before the first
// layout pass. Implements session.Surface.
func (p *Popup) Height() int {
	return int(p.height.Load())
}

// SetOffset moves the surface to the given top margin. Implements
// session.Surface.
func (p *Popup) SetOffset(top int) {
	p.offset.Store(int32(top))
	glib.IdleAdd(func() {
		if p.destroyed.Load() || p.window == nil {
			return
		}
		layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, int(p.offset.Load()))
	})
}

// Destroy tears the surface down. Idempotent; safe from any goroutine.
// Implements session.Surface.
func (p *Popup) Destroy() {
	if !p.destroyed.CompareAndSwap(false, true) {
		return
	}
	glib.IdleAdd(func() {
		if p.window != nil {
			p.window.Close()
			p.window = nil
		}
	})
}

// realize builds the GTK window. Runs on the main loop.
func (p *Popup) realize(app *gtk.Application) {
	if p.destroyed.Load() {
		return
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.SetDefaultSize(p.cfg.Display.Width, -1)
	p.window.SetSizeRequest(p.cfg.Display.Width, -1)

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(p.window, 0)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "nacho-notification")

	layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeRight, true)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, int(p.offset.Load()))
	layershell.SetMargin(p.window, layershell.LayerShellEdgeRight, p.cfg.Display.Padding)

	p.window.SetChild(p.buildContent())
	p.connectSignals()
	p.window.Present()
}

// buildContent assembles the widget tree for the popup body.
func (p *Popup) buildContent() gtk.Widgetter {
	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.AddCSSClass("notification-popup")
	box.AddCSSClass(urgencyClass(p.urgency))
	box.AddCSSClass(colorSchemeClass())
	box.SetMarginTop(8)
	box.SetMarginBottom(8)
	box.SetMarginStart(12)
	box.SetMarginEnd(12)

	header := gtk.NewBox(gtk.OrientationHorizontal, 8)
	header.AddCSSClass("notification-header")

	if img := p.buildIcon(); img != nil {
		header.Append(img)
	}

	titles := gtk.NewBox(gtk.OrientationVertical, 2)
	titles.SetHExpand(true)

	titleLbl := gtk.NewLabel(p.title)
	titleLbl.AddCSSClass("notification-title")
	titleLbl.SetXAlign(0)
	titleLbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	titleLbl.SetMaxWidthChars(40)
	titles.Append(titleLbl)

	if p.subtitle != "" {
		subtitleLbl := gtk.NewLabel(p.subtitle)
		subtitleLbl.AddCSSClass("notification-subtitle")
		subtitleLbl.SetXAlign(0)
		subtitleLbl.SetEllipsize(3)
		subtitleLbl.SetMaxWidthChars(40)
		titles.Append(subtitleLbl)
	}

	header.Append(titles)
	box.Append(header)

	if p.body != "" {
		bodyLbl := gtk.NewLabel("")
		bodyLbl.AddCSSClass("notification-body")
		bodyLbl.SetXAlign(0)
		bodyLbl.SetWrap(true)
		bodyLbl.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
		bodyLbl.SetMaxWidthChars(50)
		if strings.Contains(p.body, "<") {
			bodyLbl.SetMarkup(p.body)
		} else {
			bodyLbl.SetText(p.body)
		}
		box.Append(bodyLbl)
	}

	if len(p.actions) > 0 {
		actionBox := gtk.NewBox(gtk.OrientationHorizontal, 6)
		actionBox.AddCSSClass("notification-actions")
		for _, action := range p.actions {
			actionKey := action.Key
			btn := gtk.NewButtonWithLabel(action.Label)
			btn.AddCSSClass("notification-action")
			btn.ConnectClicked(func() {
				if p.onAction != nil {
					p.onAction(p.id, actionKey)
				}
			})
			actionBox.Append(btn)
		}
		box.Append(actionBox)
	}

	return box
}

// buildIcon decodes the parsed icon payload into an image widget. Returns
// nil when there is no icon or decoding fails.
func (p *Popup) buildIcon() gtk.Widgetter {
	if len(p.icon) == 0 {
		return nil
	}

	loader := gdkpixbuf.NewPixbufLoader()
	if err := loader.Write(p.icon); err != nil {
		p.logger.Warn("icon decode failed", "id", p.id, "error", err)
		return nil
	}
	if err := loader.Close(); err != nil {
		p.logger.Warn("icon decode failed", "id", p.id, "error", err)
		return nil
	}

	img := gtk.NewImageFromPixbuf(loader.Pixbuf())
	img.AddCSSClass("notification-icon")
	img.SetPixelSize(48)
	return img
}

// connectSignals wires the click-to-dismiss gesture and records the real
// height once the window is mapped.
func (p *Popup) connectSignals() {
	p.window.ConnectMap(func() {
		if h := p.window.AllocatedHeight(); h > 0 {
			p.height.Store(int32(h))
		}
	})

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectReleased(func(nPress int, x, y float64) {
		if p.onDismiss != nil {
			p.onDismiss(p.id)
		}
	})
	p.window.AddController(click)
}

// urgencyClass converts an urgency level to a CSS class name.
func urgencyClass(urgency int) string {
	switch urgency {
	case model.UrgencyLow:
		return "urgency-low"
	case model.UrgencyCritical:
		return "urgency-critical"
	default:
		return "urgency-normal"
	}
}

// colorSchemeClass follows the system preference through libadwaita.
func colorSchemeClass() string {
	if adw.StyleManagerGetDefault().Dark() {
		return "dark"
	}
	return "light"
}

// snapshotRecord copies the fields the popup renders so the widget tree
// never reads the record after Create returns.
func snapshotRecord(p *Popup, rec *session.Record) {
	p.id = rec.ID
	p.title = rec.Content.Title
	p.subtitle = rec.Content.Subtitle
	p.body = rec.Content.Body
	p.actions = rec.Actions
	p.urgency = rec.Urgency
	p.icon = rec.IconPayload
	p.offset.Store(int32(rec.StackOffset))
}

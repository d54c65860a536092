package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/fsnotify/fsnotify"
)

// Loader owns the CSS provider for the popup windows.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	userPath string

	watcher *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewLoader creates a theme loader with the built-in stylesheet loaded.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	userPath, err := Path()
	if err != nil {
		logger.Warn("failed to resolve theme path", "error", err)
	}

	l := &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		userPath: userPath,
		done:     make(chan struct{}),
	}
	l.Reload()
	return l
}

// Reload loads the built-in stylesheet plus the user override, if present.
func (l *Loader) Reload() {
	css := defaultCSS
	if l.userPath != "" {
		if data, err := os.ReadFile(l.userPath); err == nil {
			css += "\n" + string(data)
			l.logger.Debug("user stylesheet loaded", "path", l.userPath)
		} else if !os.IsNotExist(err) {
			l.logger.Warn("failed to read user stylesheet", "path", l.userPath, "error", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.provider.LoadFromString(css)
}

// Apply attaches the provider to a display. Must run on the GTK main loop;
// a nil display selects the default one.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

// StartHotReload watches the user stylesheet and reapplies it on change.
func (l *Loader) StartHotReload() error {
	l.mu.Lock()
	if l.running || l.userPath == "" {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(l.userPath)); err != nil {
		_ = watcher.Close()
		return err
	}
	l.watcher = watcher

	go l.watch()

	l.logger.Debug("theme watcher started", "path", l.userPath)
	return nil
}

// watch is the main event loop.
func (l *Loader) watch() {
	filename := filepath.Base(l.userPath)

	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				glib.IdleAdd(func() {
					l.Reload()
				})
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Warn("theme watcher error", "error", err)

		case <-l.done:
			return
		}
	}
}

// StopHotReload stops the watcher.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	l.running = false
	close(l.done)
	_ = l.watcher.Close()
}

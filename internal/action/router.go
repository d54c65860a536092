package action

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/session"
	"github.com/ndev51/nacho/internal/wm"
)

// classAliases maps application names to window classes that don't contain
// the name verbatim.
var classAliases = map[string][]string{
	"discord":     {"discord", "discordcanary"},
	"telegram":    {"telegram-desktop", "telegramdesktop", "org.telegram.desktop"},
	"whatsapp":    {"whatsapp-for-linux", "whatsapp", "elecwhat"},
	"signal":      {"signal", "org.signal.signal"},
	"code":        {"code", "code-oss", "visual-studio-code"},
	"thunderbird": {"thunderbird", "mozilla-thunderbird"},
	"firefox":     {"firefox", "firefox-esr"},
	"chrome":      {"google-chrome", "chromium", "chromium-browser"},
}

// matchesAlias reports whether a window class belongs to the application
// under one of its known aliases.
func matchesAlias(appName, windowClass string) bool {
	aliases, ok := classAliases[appName]
	if !ok {
		aliases = []string{appName}
	}
	for _, alias := range aliases {
		if strings.Contains(windowClass, alias) {
			return true
		}
	}
	return false
}

// Router resolves invoked actions into effects and executes them against the
// window manager. Execution is advisory: every external failure is logged
// and discarded, and Dispatch returns without waiting for it.
type Router struct {
	client   wm.Client
	logger   *slog.Logger
	keyDelay time.Duration
	timeout  time.Duration
}

// NewRouter creates a Router using the given window-manager client.
func NewRouter(client wm.Client, cfg *config.Config, logger *slog.Logger) *Router {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		client:   client,
		logger:   logger,
		keyDelay: cfg.WM.KeyDelay.Duration(),
		timeout:  cfg.WM.CommandTimeout.Duration(),
	}
}

// Dispatch resolves the action and executes its side effects on a separate
// goroutine so a hung external process can never stall notification
// processing. Implements session.Dispatcher.
func (r *Router) Dispatch(rec *session.Record, actionKey string) {
	effect := Resolve(rec, actionKey)

	r.logger.Debug("dispatching action",
		"id", rec.ID,
		"app_name", rec.AppName,
		"category", CategoryOf(rec.AppName).String(),
		"action_key", actionKey,
		"chat_name", effect.ChatName,
	)

	go r.Execute(effect)
}

// Execute runs the effect's side effects in order: focus, key injection,
// external command. Each step is bounded and best-effort.
func (r *Router) Execute(effect Effect) {
	// Generous overall bound; individual commands carry their own timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 4*r.timeout)
	defer cancel()

	if effect.FocusApp != "" {
		r.focusApplication(ctx, effect.FocusApp)
	}

	if len(effect.Keys) > 0 {
		// Give the compositor a moment to move focus before injecting.
		time.Sleep(r.keyDelay)
		if err := r.client.SendKeys(ctx, effect.Keys); err != nil {
			r.logger.Warn("key injection failed", "keys", effect.Keys, "error", err)
		}
	}

	if len(effect.LaunchArgs) > 0 {
		if err := r.client.Launch(ctx, effect.LaunchArgs[0], effect.LaunchArgs[1:]...); err != nil {
			r.logger.Warn("external command failed", "argv", effect.LaunchArgs, "error", err)
		}
	}
}

// focusApplication finds a window belonging to the application and focuses
// it, preferring the window address over the class. When no window matches,
// launching the application by name is the last resort.
func (r *Router) focusApplication(ctx context.Context, appName string) {
	app := strings.ToLower(appName)

	windows, err := r.client.ListWindows(ctx)
	if err != nil {
		r.logger.Warn("window query failed", "app_name", app, "error", err)
	}

	var target *wm.Window
	for i := range windows {
		class := strings.ToLower(windows[i].Class)
		title := strings.ToLower(windows[i].Title)
		if strings.Contains(class, app) || strings.Contains(title, app) || matchesAlias(app, class) {
			target = &windows[i]
			break
		}
	}

	if target != nil {
		if target.Address != "" {
			err := r.client.FocusAddress(ctx, target.Address)
			if err == nil {
				return
			}
			r.logger.Warn("focus by address failed", "address", target.Address, "error", err)
		}
		if target.Class != "" {
			err := r.client.FocusClass(ctx, target.Class)
			if err == nil {
				return
			}
			r.logger.Warn("focus by class failed", "class", target.Class, "error", err)
		}
	}

	if err := r.client.Launch(ctx, app); err != nil {
		r.logger.Warn("could not focus or launch application", "app_name", app, "error", err)
	}
}

// Package wm provides the narrow window-manager capability consumed by the
// action router: list windows, focus, inject keys, launch. Every call is
// fallible and advisory.
package wm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Window describes one client window as reported by the compositor.
type Window struct {
	Class   string `json:"class"`
	Title   string `json:"title"`
	Address string `json:"address"`
}

// Client is the OS action capability. Implementations must bound every call;
// callers log and discard failures.
type Client interface {
	ListWindows(ctx context.Context) ([]Window, error)
	FocusAddress(ctx context.Context, address string) error
	FocusClass(ctx context.Context, class string) error
	SendKeys(ctx context.Context, keys []string) error
	Launch(ctx context.Context, name string, args ...string) error
}

// runFunc executes a command and returns its combined stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// startFunc starts a command detached from the daemon.
type startFunc func(name string, args ...string) error

// Hyprctl talks to the Hyprland compositor through the hyprctl binary.
type Hyprctl struct {
	logger  *slog.Logger
	timeout time.Duration

	run   runFunc
	start startFunc
}

// NewHyprctl creates a Hyprctl client. Every hyprctl invocation is bounded
// by timeout.
func NewHyprctl(timeout time.Duration, logger *slog.Logger) *Hyprctl {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Hyprctl{
		logger:  logger,
		timeout: timeout,
		run:     execRun,
		start:   execStart,
	}
}

// ListWindows returns all client windows known to the compositor.
func (h *Hyprctl) ListWindows(ctx context.Context) ([]Window, error) {
	ctx, cancel := h.bound(ctx)
	defer cancel()

	out, err := h.run(ctx, "hyprctl", "clients", "-j")
	if err != nil {
		return nil, fmt.Errorf("hyprctl clients: %w", err)
	}

	var windows []Window
	if err := json.Unmarshal(out, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode hyprctl clients output: %w", err)
	}
	return windows, nil
}

// FocusAddress focuses the window with the given compositor address.
func (h *Hyprctl) FocusAddress(ctx context.Context, address string) error {
	return h.dispatch(ctx, "focuswindow", "address:"+address)
}

// FocusClass focuses the first window whose class matches exactly.
func (h *Hyprctl) FocusClass(ctx context.Context, class string) error {
	return h.dispatch(ctx, "focuswindow", "class:^"+class+"$")
}

// SendKeys injects a key combination into the focused window.
func (h *Hyprctl) SendKeys(ctx context.Context, keys []string) error {
	combination := ""
	for i, key := range keys {
		if i > 0 {
			combination += " "
		}
		combination += key
	}
	return h.dispatch(ctx, "sendshortcut", combination, "class:^.*$")
}

// Launch starts the named application detached from the daemon. The context
// is not used: launch is inherently fire-and-forget.
func (h *Hyprctl) Launch(_ context.Context, name string, args ...string) error {
	if err := h.start(name, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	h.logger.Debug("launched application", "name", name, "args", args)
	return nil
}

// dispatch issues a hyprctl dispatch subcommand.
func (h *Hyprctl) dispatch(ctx context.Context, args ...string) error {
	ctx, cancel := h.bound(ctx)
	defer cancel()

	argv := append([]string{"dispatch"}, args...)
	if _, err := h.run(ctx, "hyprctl", argv...); err != nil {
		return fmt.Errorf("hyprctl dispatch %s: %w", args[0], err)
	}
	return nil
}

// bound derives a context carrying the per-command timeout.
func (h *Hyprctl) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, h.timeout)
}

// execRun runs a command and returns its stdout.
func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// execStart starts a command without waiting for it.
func execStart(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Package main is the entry point for the nachod notification daemon.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ndev51/nacho/internal/action"
	"github.com/ndev51/nacho/internal/audio"
	"github.com/ndev51/nacho/internal/config"
	"github.com/ndev51/nacho/internal/daemon"
	"github.com/ndev51/nacho/internal/dbus"
	"github.com/ndev51/nacho/internal/display"
	"github.com/ndev51/nacho/internal/session"
	"github.com/ndev51/nacho/internal/theme"
	"github.com/ndev51/nacho/internal/wm"
)

const (
	appID   = "io.github.ndev51.nacho"
	appName = "nachod"
)

var (
	// Build-time variables
	version = "0.0.1"
)

// signalEvents forwards session events to the D-Bus signal emitters.
type signalEvents struct {
	server *dbus.Server
	logger *slog.Logger
}

func (e *signalEvents) ActionInvoked(id uint32, actionKey string) {
	if err := e.server.EmitActionInvoked(id, actionKey); err != nil {
		e.logger.Warn("failed to emit action signal", "id", id, "error", err)
	}
}

func (e *signalEvents) NotificationClosed(id uint32, reason dbus.CloseReason) {
	if err := e.server.EmitNotificationClosed(id, reason); err != nil {
		e.logger.Warn("failed to emit close signal", "id", id, "error", err)
	}
}

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		println("nachod version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting nachod", "version", version)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		dbusServer       *dbus.Server
		manager          *session.Manager
		audioManager     *audio.Manager
		configWatcher    *daemon.ConfigWatcher
		internalNotifier *daemon.InternalNotifier
		themeLoader      *theme.Loader
		running          atomic.Bool
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		themeLoader = theme.NewLoader(logger)
		themeLoader.Apply(nil)
		if err := themeLoader.StartHotReload(); err != nil {
			logger.Warn("failed to start theme watcher", "error", err)
		}

		audioManager = audio.NewManager(cfg, logger)

		hyprctl := wm.NewHyprctl(cfg.WM.CommandTimeout.Duration(), logger)
		router := action.NewRouter(hyprctl, cfg, logger)

		manager = session.NewManager(cfg, logger)
		dbusServer = dbus.NewServer(logger)
		dbusServer.SetServerInfo(dbus.ServerInfo{
			Name:        appName,
			Vendor:      "ndev51",
			Version:     version,
			SpecVersion: "1.2",
		})

		factory := display.NewFactory(&app.Application, cfg, logger,
			func(id uint32, actionKey string) {
				manager.InvokeAction(id, actionKey)
			},
			func(id uint32) {
				manager.Close(id, dbus.CloseReasonDismissed)
			},
		)

		manager.SetSurfaceFactory(factory)
		manager.SetDispatcher(router)
		manager.SetEvents(&signalEvents{server: dbusServer, logger: logger})
		manager.SetIconParser(dbus.ParseIcon)

		handleNotify := func(n *dbus.Notification) uint32 {
			id := manager.Notify(n)

			if !n.SuppressSound() {
				go func() {
					if soundFile := n.SoundFile(); soundFile != "" {
						if err := audioManager.PlayFile(soundFile); err != nil {
							logger.Debug("failed to play sound file", "file", soundFile, "error", err)
						}
					} else if err := audioManager.PlayForUrgency(n.Urgency()); err != nil {
						logger.Debug("failed to play urgency sound", "urgency", n.Urgency(), "error", err)
					}
				}()
			}
			return id
		}

		dbusServer.SetNotifyHandler(handleNotify)
		dbusServer.SetCloseHandler(func(id uint32, byProgram bool) {
			if !manager.Close(id, dbus.CloseReasonClosed) {
				logger.Debug("close requested for unknown notification",
					"id", id, "by_program", byProgram)
			}
		})

		if err := dbusServer.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		internalNotifier = daemon.NewInternalNotifier(logger)
		internalNotifier.SetNotifyHandler(handleNotify)

		configWatcher, err = daemon.NewConfigWatcher(logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				glib.IdleAdd(func() {
					manager.UpdateConfig(newConfig)
					audioManager.UpdateConfig(newConfig)
					internalNotifier.NotifyConfigReloaded()
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				internalNotifier.NotifyConfigError(err)
			})
			if err := configWatcher.Start(); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("nachod ready", "dbus_interface", dbus.Interface)

		// GTK applications quit once all windows are closed; keep a hidden
		// one around for the lifetime of the daemon.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if themeLoader != nil {
			themeLoader.StopHotReload()
		}
		if manager != nil {
			manager.CloseAll(dbus.CloseReasonExpired)
		}
		if dbusServer != nil {
			_ = dbusServer.Stop()
		}
		if audioManager != nil {
			audioManager.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args)
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("nachod stopped")
}

// Package main provides the CLI entrypoint for nachoctl, a client for the
// nachod notification daemon.
package main

import (
	"fmt"
	"log/slog"
	"os"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/ndev51/nacho/internal/dbus"
)

// Build-time variables (set via ldflags)
var (
	version = "0.0.1"
)

var globalOpts struct {
	verbose bool
}

var logger *slog.Logger

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nachoctl",
	Short: "Client for the nachod notification daemon",
	Long: `nachoctl talks to the running nachod daemon over the session bus.

It can send notifications, close them by id, and query the daemon's
capabilities and server information.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
}

// setupLogger configures the global slog logger. Logs go to stderr so
// stdout stays clean for command output.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// notificationObject returns the daemon's notification object on the
// session bus.
func notificationObject() (godbus.BusObject, error) {
	conn, err := godbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return conn.Object(dbus.BusName, godbus.ObjectPath(dbus.Path)), nil
}

func main() {
	Execute()
}

package main

import (
	"fmt"
	"strings"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/ndev51/nacho/internal/dbus"
)

var sendOpts struct {
	appName    string
	icon       string
	urgency    string
	timeout    int32
	replacesID uint32
	actions    []string
}

var sendCmd = &cobra.Command{
	Use:   "send <summary> [body]",
	Short: "Send a notification",
	Long: `Send a notification through the running daemon.

Actions are given as key=label pairs and appear as buttons on the popup:

  nachoctl send "Build finished" --action open="Open log" --action dismiss=Dismiss`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendOpts.appName, "app-name", "a", "nachoctl",
		"Application name to report")
	sendCmd.Flags().StringVarP(&sendOpts.icon, "icon", "i", "",
		"Icon name or absolute path")
	sendCmd.Flags().StringVarP(&sendOpts.urgency, "urgency", "u", "normal",
		"Urgency level (low, normal, critical)")
	sendCmd.Flags().Int32VarP(&sendOpts.timeout, "timeout", "t", -1,
		"Expire timeout in milliseconds (-1 server default, 0 never)")
	sendCmd.Flags().Uint32VarP(&sendOpts.replacesID, "replaces-id", "r", 0,
		"Id of a notification to replace")
	sendCmd.Flags().StringArrayVar(&sendOpts.actions, "action", nil,
		"Action as key=label (repeatable)")
}

func runSend(cmd *cobra.Command, args []string) error {
	summary := args[0]
	body := ""
	if len(args) > 1 {
		body = args[1]
	}

	urgency, err := parseUrgency(sendOpts.urgency)
	if err != nil {
		return err
	}

	actions := make([]string, 0, len(sendOpts.actions)*2)
	for _, a := range sendOpts.actions {
		key, label, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid action %q: expected key=label", a)
		}
		actions = append(actions, key, label)
	}

	hints := map[string]godbus.Variant{
		"urgency": godbus.MakeVariant(urgency),
	}

	obj, err := notificationObject()
	if err != nil {
		return err
	}

	var id uint32
	call := obj.Call(dbus.Interface+".Notify", 0,
		sendOpts.appName,
		sendOpts.replacesID,
		sendOpts.icon,
		summary,
		body,
		actions,
		hints,
		sendOpts.timeout,
	)
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify failed: %w", err)
	}

	fmt.Println(id)
	return nil
}

// parseUrgency maps an urgency name to its wire byte.
func parseUrgency(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "low":
		return 0, nil
	case "normal":
		return 1, nil
	case "critical":
		return 2, nil
	default:
		return 0, fmt.Errorf("invalid urgency %q: must be low, normal or critical", s)
	}
}

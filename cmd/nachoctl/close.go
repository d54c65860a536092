package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ndev51/nacho/internal/dbus"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a notification by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	obj, err := notificationObject()
	if err != nil {
		return err
	}

	// The trailing boolean marks a programmatic close.
	call := obj.Call(dbus.Interface+".CloseNotification", 0, uint32(id), true)
	if call.Err != nil {
		return fmt.Errorf("close failed: %w", call.Err)
	}
	return nil
}

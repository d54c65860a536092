package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndev51/nacho/internal/dbus"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Show server information and capabilities",
	Args:  cobra.NoArgs,
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	obj, err := notificationObject()
	if err != nil {
		return err
	}

	var name, vendor, version, specVersion string
	call := obj.Call(dbus.Interface+".GetServerInformation", 0)
	if err := call.Store(&name, &vendor, &version, &specVersion); err != nil {
		return fmt.Errorf("failed to query server information: %w", err)
	}

	var capabilities []string
	call = obj.Call(dbus.Interface+".GetCapabilities", 0)
	if err := call.Store(&capabilities); err != nil {
		return fmt.Errorf("failed to query capabilities: %w", err)
	}

	fmt.Printf("name:         %s\n", name)
	fmt.Printf("vendor:       %s\n", vendor)
	fmt.Printf("version:      %s\n", version)
	fmt.Printf("spec version: %s\n", specVersion)
	fmt.Printf("capabilities: %s\n", strings.Join(capabilities, ", "))
	return nil
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"druidkit/cli/internal/cluster"
	"druidkit/cli/internal/creds"

	"github.com/spf13/cobra"
)

// disconnectCmd represents the disconnect command for clearing the saved
// cluster connection. It removes the node list from config and any stored
// credentials from the OS keychain.
var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the saved cluster connection and credentials",
	Long: `The disconnect command clears the configured cluster connection from the local
system, including the broker node list and any basic-auth credentials.

This command removes:
- Broker credentials from the OS keychain
- The saved node list from the config file
- Cached endpoint state`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc := creds.NewService()
		if err := svc.Disconnect(cmd.Context()); err != nil {
			return err
		}
		cluster.ClearCache()

		fmt.Println("✅ Cluster connection and credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(disconnectCmd)
}

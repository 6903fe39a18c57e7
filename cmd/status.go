// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"druidkit/cli/internal/creds"
	"druidkit/cli/internal/httperrors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command for inspecting the broker.
// It fetches the broker's version and loaded modules via the status endpoint.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show broker version and loaded modules",
	Long: `The status command probes the configured broker and reports its version and
loaded extension modules. Use it to verify the connection after 'druidkit
connect' or to diagnose an unresponsive cluster.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc := creds.NewService()
		client, err := svc.Client(cmd.Context())
		if err != nil {
			if errors.Is(err, creds.ErrNotConnected) {
				pterm.Println("⚠️  No cluster connection configured")
				pterm.Println("   Please run: druidkit connect")
				return nil
			}
			return err
		}

		status, err := client.Status(cmd.Context())
		if err != nil {
			return httperrors.FormatNetworkError(err, "fetching broker status")
		}

		details := fmt.Sprintf("Broker:  %s\nVersion: %s\nModules: %d loaded",
			httperrors.ExtractHostFromURL(client.URL()), status.Version, len(status.Modules))
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Broker Status")).
			WithPadding(1).
			Println(details)

		if len(status.Modules) > 0 {
			pterm.Println()
			items := make([]pterm.BulletListItem, 0, len(status.Modules))
			for _, m := range status.Modules {
				items = append(items, pterm.BulletListItem{Level: 0, Text: m.Name})
			}
			_ = pterm.DefaultBulletList.WithItems(items).Render()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"strings"

	"druidkit/cli/internal/config"
	"druidkit/cli/internal/creds"
	"druidkit/cli/internal/logging"
	"druidkit/cli/internal/nodeaddr"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command for displaying the configured cluster
// connection. It shows the broker node list and the auth account without
// exposing any stored secrets.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured cluster connection",
	Long: `The info command displays the currently configured broker node list and the
basic-auth account in use. Credentials are never printed; any secrets embedded
in environment overrides are masked.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, source, err := resolveNodes()
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			pterm.Println("⚠️  No cluster connection configured")
			pterm.Println("   Please run: druidkit connect")
			return nil
		}
		pterm.Println("Using nodes from " + source)
		pterm.Println()

		lines := make([]string, 0, len(nodes)+1)
		for _, n := range nodes {
			lines = append(lines, logging.Mask(n))
		}

		if st, err := creds.Load(); err == nil && st.Connected && st.Username != "" {
			lines = append(lines, "auth: basic ("+st.Username+")")
		} else {
			lines = append(lines, "auth: none")
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Cluster Connection")).
			WithPadding(1).
			Println(strings.Join(lines, "\n"))
		pterm.Println()
		pterm.Println("To update this connection, run: druidkit connect")
		pterm.Println()

		return nil
	},
}

// resolveNodes returns the broker node list, preferring the DRUIDKIT_NODES
// environment override, then the saved config.
func resolveNodes() ([]string, string, error) {
	if env := os.Getenv("DRUIDKIT_NODES"); strings.TrimSpace(env) != "" {
		nodes, err := nodeaddr.ParseList(env)
		if err != nil {
			return nil, "", err
		}
		return nodes, "DRUIDKIT_NODES environment variable", nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if !cfg.Cluster.Provided {
		return nil, "", nil
	}
	return cfg.Cluster.Nodes, "saved configuration", nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the druidkit CLI application.
// It implements subcommands for connecting to a Druid cluster, running native and
// SQL queries, and inspecting broker state using the Cobra CLI framework. The
// package handles command parsing, execution, and provides a rich terminal UI
// with spinners and progress indicators.
package cmd

import (
	"fmt"
	"os"

	"druidkit/cli/internal/creds"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point for the druidkit CLI application.
var rootCmd = &cobra.Command{
	Use:           "druidkit",
	Short:         "druidkit CLI for querying Druid clusters over HTTP",
	Long:          `druidkit is a command-line tool for running native and SQL queries against a Druid-compatible broker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("druidkit %s\n", Version)

			// Broker version is best-effort; skip when not connected
			if ok, err := creds.IsConnected(cmd.Context()); err != nil || !ok {
				return nil
			}
			svc := creds.NewService()
			if client, err := svc.Client(cmd.Context()); err == nil {
				if status, err := client.Status(cmd.Context()); err == nil {
					fmt.Printf("broker %s\n", status.Version)
				}
			}
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and broker version information")
}

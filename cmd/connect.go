// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"druidkit/cli/internal/cluster"
	"druidkit/cli/internal/creds"
	"druidkit/cli/internal/druid"
	"druidkit/cli/internal/logging"
	"druidkit/cli/internal/nodeaddr"
	"druidkit/cli/internal/terminal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verboseConnect bool
)

// connectCmd represents the connect command for configuring cluster connections.
// It prompts the user for broker addresses and optional basic-auth credentials,
// verifies reachability, then stores the node list in config and the credentials
// in the OS keychain.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Configure and verify the Druid cluster connection",
	Long: `The connect command prompts for one or more broker addresses and verifies that
the first broker is reachable. The node list is stored in the config file while
any basic-auth credentials are stored in the OS keychain.

Example address format: http://localhost:8888 (multiple addresses comma-separated)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Enable verbose mode for all modules if --verbose is set
		if verboseConnect {
			os.Setenv("DRUIDKIT_VERBOSE", "1")
		}

		ctx := cmd.Context()
		reader := bufio.NewReader(os.Stdin)
		promptText := "Enter broker address(es) (e.g., http://localhost:8888): "
		fmt.Print(promptText)
		rawAddrs, _ := reader.ReadString('\n')
		rawAddrs = strings.TrimSpace(rawAddrs)

		// Clear the prompt and user input from terminal
		terminal.ClearPreviousLines(len(promptText) + len(rawAddrs))

		if rawAddrs == "" {
			return errors.New("broker address is required")
		}

		nodes, err := nodeaddr.ParseList(rawAddrs)
		if err != nil {
			var parseErr *nodeaddr.ParseError
			if errors.As(err, &parseErr) {
				fmt.Println("❌ " + parseErr.Error())
				return parseErr
			}
			fmt.Println("❌ Invalid broker address. Please check the address and try again.")
			fmt.Println("   Example: http://localhost:8888")
			return err
		}

		username, password, err := promptCredentials(reader)
		if err != nil {
			return err
		}

		// Verify the first broker is reachable
		startTime := time.Now()
		stopSpinner := startInlineSpinner(os.Stdout, "verifying connection",
			[]string{"-", "\\", "|", "/"}, 100*time.Millisecond)

		ctxProbe, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		client, err := buildProbeClient(nodes, username, password)
		if err != nil {
			stopSpinner()
			return err
		}
		if err := client.Health(ctxProbe); err != nil {
			stopSpinner()
			fmt.Println("Connection failed. Please check the broker address and network connection.")
			fmt.Println(logging.PresentError("probe", err))
			return err
		}

		// Ensure spinner runs for at least 2 seconds for better UX
		if elapsed := time.Since(startTime); elapsed < 2*time.Second {
			time.Sleep(2*time.Second - elapsed)
		}
		stopSpinner()

		svc := creds.NewService()
		if err := svc.Connect(ctx, nodes, username, password); err != nil {
			fmt.Println("❌ Failed to save connection details.")
			if username != "" {
				fmt.Println("   Secure credential storage requires macOS or Windows.")
			}
			return err
		}

		cluster.ClearCache()

		fmt.Println("✅ Cluster connection verified and saved!")
		fmt.Println("   You're ready to run 'druidkit query' or 'druidkit sql'")
		return nil
	},
}

// promptCredentials asks for optional basic-auth credentials. An empty
// username means the cluster is unauthenticated.
func promptCredentials(reader *bufio.Reader) (string, string, error) {
	prompt := "Username (leave empty for no auth): "
	fmt.Print(prompt)
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	terminal.ClearPreviousLines(len(prompt) + len(username))

	if username == "" {
		return "", "", nil
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", fmt.Errorf("read password: %w", err)
	}
	return username, string(passBytes), nil
}

// buildProbeClient creates a short-lived client for the connect probe.
func buildProbeClient(nodes []string, username, password string) (*druid.Client, error) {
	opts := []druid.Option{druid.WithTimeout(15 * time.Second)}
	if username != "" {
		opts = append(opts, druid.WithBasicAuth(username, password))
	}
	return druid.New(nodes, opts...)
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().BoolVarP(&verboseConnect, "verbose", "v", false, "Enable verbose debug output")
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"druidkit/cli/internal/creds"
	"druidkit/cli/internal/druid"
	"druidkit/cli/internal/druidsql"
	"druidkit/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	sqlFile   string
	sqlFormat string
	sqlParams []string
)

// sqlCmd represents the sql command for running SQL queries.
// It submits a SQL statement to the broker's SQL endpoint and renders the
// result rows in the same formats as the query command.
var sqlCmd = &cobra.Command{
	Use:   "sql [statement]",
	Short: "Run a SQL query against the configured broker",
	Long: `The sql command submits a SQL statement to the broker and renders the result
rows. The statement is taken from the first argument, or read from --file or
stdin when no argument is given.

Dynamic parameters bind to ? placeholders in order:

  druidkit sql 'SELECT page FROM wikipedia WHERE user = ?' --param Taffe316`,

	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readSQLText(args)
		if err != nil {
			return err
		}

		params := make([]druidsql.Parameter, 0, len(sqlParams))
		for _, p := range sqlParams {
			params = append(params, druidsql.Varchar(p))
		}
		stmt := druidsql.New(text, params...)

		svc := creds.NewService()
		client, err := svc.Client(cmd.Context())
		if err != nil {
			if errors.Is(err, creds.ErrNotConnected) {
				fmt.Println("⚠️  No cluster connection configured.")
				fmt.Println("   Please run 'druidkit connect' first.")
				return nil
			}
			return err
		}

		stopSpinner := startQuerySpinner("running sql")
		result, err := druid.SQL[map[string]any](cmd.Context(), client, stmt)
		stopSpinner()
		if err != nil {
			logging.PresentQueryError(err)
			return err
		}

		return renderRows(result.Rows(), sqlFormat)
	},
}

// readSQLText resolves the SQL statement from argument, file, or stdin.
func readSQLText(args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}

	var data []byte
	var err error
	if sqlFile == "" || sqlFile == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(sqlFile)
	}
	if err != nil {
		return "", fmt.Errorf("read statement: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("empty SQL statement")
	}
	return text, nil
}

func init() {
	rootCmd.AddCommand(sqlCmd)
	sqlCmd.Flags().StringVarP(&sqlFile, "file", "f", "", "Read the statement from a file instead of stdin")
	sqlCmd.Flags().StringVarP(&sqlFormat, "format", "o", "table", "Output format: table or json")
	sqlCmd.Flags().StringArrayVar(&sqlParams, "param", nil, "Bind a VARCHAR parameter to the next ? placeholder (repeatable)")
}

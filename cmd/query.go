// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"druidkit/cli/internal/creds"
	"druidkit/cli/internal/druid"
	"druidkit/cli/internal/logging"
	"druidkit/cli/internal/query"

	"atomicgo.dev/cursor"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	queryFile   string
	queryFormat string
	queryID     string
)

// queryCmd represents the query command for running native queries.
// It reads a native query body from a file or stdin, posts it to the
// configured broker, and renders the result rows.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a native query against the configured broker",
	Long: `The query command submits a native JSON query to the broker and renders the
result rows. The query body is read from --file or from stdin, and must be a
JSON object carrying its own queryType (topN, scan, groupBy, timeseries).

A queryId is attached to the query context automatically unless the body
already carries one, so individual queries can be traced in broker logs.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := readQueryBody(queryFile)
		if err != nil {
			return err
		}

		body, err = attachQueryID(body, queryID)
		if err != nil {
			return err
		}

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

		stopSpinner := startQuerySpinner("running query")
		result, err := druid.Query[map[string]any](cmd.Context(), client, query.Raw(body))
		stopSpinner()
		if err != nil {
			logging.PresentQueryError(err)
			return err
		}

		return renderRows(result.Rows(), queryFormat)
	},
}

// readQueryBody reads the query JSON from the given file, or stdin when the
// path is empty or "-".
func readQueryBody(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read query: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("query body is not valid JSON")
	}
	return data, nil
}

// attachQueryID injects a queryId into the query context. An explicit id wins
// over an existing one; otherwise a random UUID is used when none is present.
func attachQueryID(body []byte, explicit string) ([]byte, error) {
	var q map[string]any
	if err := json.Unmarshal(body, &q); err != nil {
		return nil, errors.New("query body must be a JSON object")
	}
	if _, ok := q["queryType"]; !ok {
		return nil, errors.New("query body is missing queryType")
	}

	qctx, _ := q["context"].(map[string]any)
	if qctx == nil {
		qctx = map[string]any{}
	}
	if explicit != "" {
		qctx["queryId"] = explicit
	} else if _, ok := qctx["queryId"]; !ok {
		qctx["queryId"] = uuid.NewString()
	}
	q["context"] = qctx

	return json.Marshal(q)
}

// startQuerySpinner shows an area spinner while a query is in flight.
// The returned function stops the spinner and restores the cursor.
func startQuerySpinner(text string) func() {
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", frames[i%len(frames)], text))
			case <-stop:
				return
			}
		}
	}()

	return func() {
		close(stop)
		<-done
		area.Stop()
		cursor.Show()
	}
}

// renderRows prints decoded rows in the requested format.
func renderRows(rows []map[string]any, format string) error {
	if format == "json" {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(rows) == 0 {
		pterm.Println("(no rows)")
		return nil
	}

	// Stable column order across rows
	colSet := map[string]struct{}{}
	for _, row := range rows {
		for k := range row {
			colSet[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(colSet))
	for k := range colSet {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	table := pterm.TableData{cols}
	for _, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := row[c]; ok && v != nil {
				line[i] = fmt.Sprint(v)
			}
		}
		table = append(table, line)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		return err
	}
	pterm.Printf("\n%d row(s)\n", len(rows))
	return nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "Read the query body from a file instead of stdin")
	queryCmd.Flags().StringVarP(&queryFormat, "format", "o", "table", "Output format: table or json")
	queryCmd.Flags().StringVar(&queryID, "id", "", "Explicit queryId to attach to the query context")
}

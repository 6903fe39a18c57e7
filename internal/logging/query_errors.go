// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"druidkit/cli/internal/druiderr"
)

// FormatQueryError formats a query failure in a user-friendly way, keyed on
// the error kind.
func FormatQueryError(err error) string {
	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Query Failed"))
	builder.WriteString("\n\n")

	switch druiderr.KindOf(err) {
	case druiderr.TransportFailed:
		builder.WriteString("The broker could not be reached.\n")
		builder.WriteString("This usually happens when:\n")
		builder.WriteString("  • The broker is down or restarting\n")
		builder.WriteString("  • The configured address or port is wrong\n")
		builder.WriteString("  • A firewall or proxy closed the connection\n")

	case druiderr.ServerError:
		builder.WriteString("The broker rejected the query.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • The query references an unknown datasource or column\n")
		builder.WriteString("  • The query shape is not valid for its query type\n")
		builder.WriteString("  • The cluster ran out of resources for the query\n")

	case druiderr.ParseFailed:
		builder.WriteString("The broker's response could not be decoded.\n")
		builder.WriteString("Possible reasons:\n")
		builder.WriteString("  • The row type does not match the result columns\n")
		builder.WriteString("  • A proxy returned a non-JSON error page\n")
		builder.WriteString("  • Broker and client versions disagree on the format\n")

	case druiderr.InvalidConfig:
		builder.WriteString("The saved connection settings are not usable.\n")
		builder.WriteString("To fix this:\n")
		builder.WriteString("  • Run 'druidkit connect' to reconfigure the cluster\n")

	default:
		builder.WriteString("The query was interrupted.\n")
		builder.WriteString("This could mean:\n")
		builder.WriteString("  • Network connection dropped\n")
		builder.WriteString("  • Broker is restarting or under maintenance\n")
	}

	builder.WriteString("\n")

	if druiderr.IsKind(err, druiderr.InvalidConfig) {
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please run 'druidkit connect' and try again"))
	} else {
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Check the query and retry, or run 'druidkit status' to inspect the broker"))
	}

	builder.WriteString("\n")

	if err != nil && strings.TrimSpace(err.Error()) != "" {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}

	return builder.String()
}

// PresentQueryError displays a formatted query failure.
func PresentQueryError(err error) {
	fmt.Println()
	fmt.Println(FormatQueryError(err))
	fmt.Println()
}

// Package main is the entry point for the druidkit CLI application.
// It provides query access to Druid-compatible clusters over HTTP.
package main

import (
	"druidkit/cli/cmd"
)

// main is the entry point for the druidkit CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}

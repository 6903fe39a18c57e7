// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cluster

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"
)

// Resolve returns the endpoint set for the first configured node, using the
// RAM cache if available. On the first call it probes the node's health
// endpoint so a dead broker is reported before any query is built.
func Resolve(ctx context.Context, nodes []string) (*Endpoints, error) {
	if cached := GetCached(); cached != nil {
		return cached, nil
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no broker nodes configured")
	}

	endpoints := EndpointsFor(nodes[0])
	if err := Probe(ctx, endpoints); err != nil {
		return nil, formatProbeError(nodes[0], err)
	}

	SetCached(&endpoints)
	return &endpoints, nil
}

// Probe performs a liveness check against the broker's health endpoint.
func Probe(ctx context.Context, e Endpoints) error {
	client := &http.Client{Timeout: 15 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.Health, nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}
	req.Header.Set("User-Agent", "druidkit-cli/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("broker returned status %d", resp.StatusCode)
	}
	return nil
}

// formatProbeError creates a user-friendly error message for an unreachable broker.
func formatProbeError(node string, err error) error {
	pterm.Error.Printf("Cannot connect to broker at %s\n", Host(node))
	pterm.Println()
	pterm.Info.Println("Please check:")
	pterm.Println("  • The broker process is running")
	pterm.Println("  • The address and port are correct (run: druidkit info)")
	pterm.Println("  • Firewall settings that might block the connection")
	pterm.Println()

	return fmt.Errorf("broker unreachable: %w", err)
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package creds implements persistence for connection state.
//
// This file stores the serialized state in the OS keychain via internal/keychain.
package creds

import (
	"encoding/json"
	"fmt"
	"os"

	"druidkit/cli/internal/keychain"
)

var verboseCreds = os.Getenv("DRUIDKIT_VERBOSE") == "1"

// State represents persisted connection state for the configured cluster.
type State struct {
	Connected bool   `json:"connected"`
	Username  string `json:"username"`
}

// Load reads the connection state from the keychain. Missing state yields zero value.
func Load() (State, error) {
	if verboseCreds {
		fmt.Printf("[DEBUG] creds.Load: Loading connection state from keychain\n")
	}

	var s State
	km, err := keychain.GetManager()
	if err != nil {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Load: GetManager failed: %v\n", err)
		}
		return s, err
	}

	data, err := km.LoadConnState()
	if err != nil {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Load: LoadConnState failed: %v\n", err)
		}
		return s, err
	}

	if len(data) == 0 {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Load: No connection state found (empty data)\n")
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s); err != nil {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Load: Unmarshal failed: %v\n", err)
		}
		return s, err
	}

	if verboseCreds {
		fmt.Printf("[DEBUG] creds.Load: Success - Connected: %v, Username: %s\n", s.Connected, s.Username)
	}

	return s, nil
}

// Save writes the connection state to the keychain.
func Save(s State) error {
	if verboseCreds {
		fmt.Printf("[DEBUG] creds.Save: Saving connection state - Connected: %v, Username: %s\n", s.Connected, s.Username)
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	km, err := keychain.GetManager()
	if err != nil {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Save: GetManager failed: %v\n", err)
		}
		return err
	}

	if err := km.SaveConnState(b); err != nil {
		if verboseCreds {
			fmt.Printf("[DEBUG] creds.Save: SaveConnState failed: %v\n", err)
		}
		return err
	}

	return nil
}

// Clear removes the connection state and stored credentials from the keychain.
func Clear() error {
	km, err := keychain.GetManager()
	if err != nil {
		return err
	}
	return km.ClearAll()
}

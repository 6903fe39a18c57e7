// Package creds manages the CLI's saved broker connection: the non-secret
// connection state (which cluster, which account) and its lifecycle around
// the secrets held in the OS keychain.
//
// The package provides both high-level connection state management and
// low-level persistence operations. Broker basic-auth credentials never
// touch the config file; they live in the keychain only.
package creds

import (
	"context"
)

// IsConnected reports whether a broker connection is configured.
func IsConnected(ctx context.Context) (bool, error) {
	st, err := Load()
	if err != nil {
		return false, err
	}
	return st.Connected, nil
}

// SetConnected marks the cluster as connected by writing state to the keychain.
func SetConnected(ctx context.Context, username string) error {
	return Save(State{Connected: true, Username: username})
}

// SetDisconnected clears connection state.
func SetDisconnected(ctx context.Context) error {
	return Clear()
}

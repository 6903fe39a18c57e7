// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package creds

import (
	"context"
	"errors"
	"time"

	"druidkit/cli/internal/cluster"
	"druidkit/cli/internal/config"
	"druidkit/cli/internal/druid"
	"druidkit/cli/internal/keychain"
)

// ErrNotConnected is returned when no broker connection has been configured.
var ErrNotConnected = errors.New("no cluster configured; run 'druidkit connect' first")

// Service centralizes connection lifecycle operations against local config
// and the OS keychain.
type Service struct{}

// NewService constructs a connection Service.
func NewService() *Service {
	return &Service{}
}

// Connect persists the cluster node list and optional credentials, then
// marks the connection as established.
func (s *Service) Connect(ctx context.Context, nodes []string, username, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Cluster.Nodes = nodes
	cfg.Cluster.Provided = true
	if err := config.Save(cfg); err != nil {
		return err
	}

	if username != "" {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := km.SaveCredentials(username, password); err != nil {
			return err
		}
	}

	return SetConnected(ctx, username)
}

// Disconnect clears the saved node list, credentials, and connection state.
func (s *Service) Disconnect(ctx context.Context) error {
	cfg, err := config.Load()
	if err == nil {
		cfg.Cluster = config.ClusterConfig{}
		_ = config.Save(cfg)
	}
	return SetDisconnected(ctx)
}

// Client builds a broker client from the saved configuration. Credentials
// are attached when the connection was configured with a username.
func (s *Service) Client(ctx context.Context) (*druid.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if !cfg.Cluster.Provided || len(cfg.Cluster.Nodes) == 0 {
		return nil, ErrNotConnected
	}

	// Probe the broker once per process before handing out a client
	if _, err := cluster.Resolve(ctx, cfg.Cluster.Nodes); err != nil {
		return nil, err
	}

	opts := []druid.Option{}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, druid.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}

	st, err := Load()
	if err == nil && st.Connected && st.Username != "" {
		km, kmErr := keychain.GetManager()
		if kmErr == nil {
			if username, password, credErr := km.LoadCredentials(); credErr == nil && username != "" {
				opts = append(opts, druid.WithBasicAuth(username, password))
			}
		}
	}

	return druid.New(cfg.Cluster.Nodes, opts...)
}

// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", c.LogLevel)
	}
	if c.Output != "table" {
		t.Errorf("Output = %v, want table", c.Output)
	}
	if c.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %v, want 60", c.TimeoutSeconds)
	}
	if c.Cluster.Provided {
		t.Error("Cluster.Provided = true, want false for fresh config")
	}
	if len(c.Cluster.Nodes) != 0 {
		t.Errorf("Cluster.Nodes = %v, want empty", c.Cluster.Nodes)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := Config{
		LogLevel: "debug",
		Cluster: ClusterConfig{
			Nodes:    []string{"http://localhost:8888", "http://backup:8888"},
			Provided: true,
		},
		Output:         "json",
		TimeoutSeconds: 120,
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.LogLevel != saved.LogLevel {
		t.Errorf("LogLevel = %v, want %v", loaded.LogLevel, saved.LogLevel)
	}
	if loaded.Output != saved.Output {
		t.Errorf("Output = %v, want %v", loaded.Output, saved.Output)
	}
	if loaded.TimeoutSeconds != saved.TimeoutSeconds {
		t.Errorf("TimeoutSeconds = %v, want %v", loaded.TimeoutSeconds, saved.TimeoutSeconds)
	}
	if !loaded.Cluster.Provided {
		t.Error("Cluster.Provided = false, want true")
	}
	if len(loaded.Cluster.Nodes) != 2 || loaded.Cluster.Nodes[0] != saved.Cluster.Nodes[0] {
		t.Errorf("Cluster.Nodes = %v, want %v", loaded.Cluster.Nodes, saved.Cluster.Nodes)
	}
}

func TestSavePermissions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := Save(Config{LogLevel: "info"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "druidkit", "config.json"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file perm = %o, want 600", perm)
	}
}

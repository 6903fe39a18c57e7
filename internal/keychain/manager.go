// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for druidkit.
// This module manages all interactions with the OS keychain/credential store,
// providing a unified interface for storing and retrieving sensitive data such as
// broker basic-auth credentials and serialized connection state.
//
// The package supports multiple operating systems including macOS Keychain and
// Windows Credential Manager, with thread-safe operations and proper error handling.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "druidkit"

// Keys used for storing secrets in the OS keychain.
const (
	KeyBrokerUsername = "broker_username"
	KeyBrokerPassword = "broker_password"
	KeyConnState      = "conn_state"
)

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}

	return &Manager{
		ring: ring,
	}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	// If already initialized successfully, return it
	if globalManager != nil {
		return globalManager, nil
	}

	// If previous initialization failed, retry
	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// Forces use of macOS Keychain or Windows Credential Manager - no file fallback.
func openRing() (keyring.Keyring, error) {
	// Only support darwin/windows platforms
	if runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		return nil, errors.New("secure storage not supported on this OS (macOS/Windows only)")
	}

	// Use platform-specific native backends only
	var allowedBackends []keyring.BackendType
	if runtime.GOOS == "darwin" {
		// Try macOS Keychain first, then pass (password store) as fallback
		// Pass requires 'pass' utility installed: brew install pass
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	} else if runtime.GOOS == "windows" {
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
	}

	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}

	return ring, nil
}

// SaveCredentials stores broker basic-auth credentials in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveCredentials(username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Use native backend if available
	if m.backend != nil {
		if username != "" {
			if err := m.backend.Set(KeyBrokerUsername, username); err != nil {
				return err
			}
		}
		if password != "" {
			if err := m.backend.Set(KeyBrokerPassword, password); err != nil {
				return err
			}
		}
		return nil
	}

	// Fallback to keyring library
	if username != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyBrokerUsername, Data: []byte(username)}); err != nil {
			return err
		}
	}
	if password != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyBrokerPassword, Data: []byte(password)}); err != nil {
			return err
		}
	}
	return nil
}

// LoadCredentials retrieves broker basic-auth credentials from the keychain.
// This method is thread-safe.
func (m *Manager) LoadCredentials() (username, password string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		username, err = m.backend.Get(KeyBrokerUsername)
		if err != nil {
			return "", "", err
		}
		password, err = m.backend.Get(KeyBrokerPassword)
		if err != nil {
			return "", "", err
		}
		return username, password, nil
	}

	userItem, err := m.ring.Get(KeyBrokerUsername)
	if err != nil {
		return "", "", err
	}
	passItem, err := m.ring.Get(KeyBrokerPassword)
	if err != nil {
		return "", "", err
	}
	return string(userItem.Data), string(passItem.Data), nil
}

// SaveConnState stores serialized connection state in the keychain.
// This method is thread-safe.
func (m *Manager) SaveConnState(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(KeyConnState, string(data))
	}

	return m.ring.Set(keyring.Item{Key: KeyConnState, Data: data})
}

// LoadConnState retrieves serialized connection state from the keychain.
// This method is thread-safe.
func (m *Manager) LoadConnState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		data, err := m.backend.Get(KeyConnState)
		if err != nil {
			return nil, err
		}
		return []byte(data), nil
	}

	it, err := m.ring.Get(KeyConnState)
	if err != nil {
		return nil, err
	}
	return it.Data, nil
}

// ClearCredentials removes broker credentials from the keychain.
// This method is thread-safe.
func (m *Manager) ClearCredentials() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		_ = m.backend.Delete(KeyBrokerUsername)
		_ = m.backend.Delete(KeyBrokerPassword)
		return nil
	}

	_ = m.ring.Remove(KeyBrokerUsername)
	_ = m.ring.Remove(KeyBrokerPassword)
	return nil
}

// ClearAll removes all secrets from the keychain.
// This method is thread-safe and should be used with caution.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		_ = m.backend.Delete(KeyBrokerUsername)
		_ = m.backend.Delete(KeyBrokerPassword)
		_ = m.backend.Delete(KeyConnState)
		return nil
	}

	_ = m.ring.Remove(KeyBrokerUsername)
	_ = m.ring.Remove(KeyBrokerPassword)
	_ = m.ring.Remove(KeyConnState)
	return nil
}

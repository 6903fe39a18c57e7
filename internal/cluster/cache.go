// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cluster

import "sync"

var (
	// Global singleton cache for resolved endpoints.
	// Lives only in process memory and is cleared when the CLI exits.
	globalCache     *Endpoints
	globalCacheLock sync.RWMutex
)

// GetCached returns the cached endpoints from RAM, or nil if not cached.
func GetCached() *Endpoints {
	globalCacheLock.RLock()
	defer globalCacheLock.RUnlock()
	return globalCache
}

// SetCached stores the endpoints in RAM.
func SetCached(e *Endpoints) {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = e
}

// ClearCache removes the endpoints from RAM (primarily for testing).
func ClearCache() {
	globalCacheLock.Lock()
	defer globalCacheLock.Unlock()
	globalCache = nil
}

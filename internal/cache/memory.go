package cache

import (
	"context"
	"sync"
	"time"

	"github.com/iwvelando/mortgage-payoff/pkg/constants"
)

type memoryEntry struct {
	value   string
	stored  time.Time
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Memory is an in-process Cache holding at most maxEntries results. Expired
// entries are swept on every Set; when the cache is still full the oldest
// entry is evicted. A zero TTL keeps entries until they are evicted.
type Memory struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		data:       make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: constants.DefaultMemoryCacheEntries,
		now:        time.Now,
	}
}

// Get returns the cached value for key, dropping it if expired.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value string) error {
	now := m.now()
	entry := memoryEntry{value: value, stored: now}
	if m.ttl > 0 {
		entry.expires = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		m.evictOldest()
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// sweep drops expired entries. Callers hold the lock.
func (m *Memory) sweep(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
}

// evictOldest drops the entry stored first. Callers hold the lock.
func (m *Memory) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range m.data {
		if oldestKey == "" || entry.stored.Before(oldest) {
			oldestKey, oldest = key, entry.stored
		}
	}
	delete(m.data, oldestKey)
}

package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider is a process-local cache with per-entry TTL and lazy
// expiry. Entries are copied on write and read so callers cannot alias
// cached bytes.
type MemoryProvider struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryProvider creates an empty in-memory cache.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached bytes or ErrCacheMiss. Expired entries are
// removed on access.
func (p *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	entry, ok := p.entries[key]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && p.now().After(entry.expiresAt) {
		p.mu.Lock()
		delete(p.entries, key)
		p.mu.Unlock()
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set stores a copy of value. A non-positive ttl stores the entry
// without expiry.
func (p *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = p.now().Add(ttl)
	}

	p.mu.Lock()
	p.entries[key] = memoryEntry{value: stored, expiresAt: expiresAt}
	p.mu.Unlock()
	return nil
}

// Del removes a key; deleting an absent key is not an error.
func (p *MemoryProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
	return nil
}

// Close drops all entries.
func (p *MemoryProvider) Close() error {
	p.mu.Lock()
	p.entries = make(map[string]memoryEntry)
	p.mu.Unlock()
	return nil
}

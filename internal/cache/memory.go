package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const memoryCacheEntries = 256

type memoryEntry struct {
	value    string
	deadline time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && !now.Before(e.deadline)
}

// MemoryProvider is a process-local Provider backed by a bounded LRU.
type MemoryProvider struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryProvider() (*MemoryProvider, error) {
	entries, err := lru.New[string, memoryEntry](memoryCacheEntries)
	if err != nil {
		return nil, err
	}
	return &MemoryProvider{entries: entries, now: time.Now}, nil
}

func (m *MemoryProvider) Get(_ context.Context, key string) (string, error) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	if entry.expired(m.now()) {
		m.entries.Remove(key)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (m *MemoryProvider) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.deadline = m.now().Add(ttl)
	}
	m.entries.Add(key, entry)
	return nil
}

func (m *MemoryProvider) Delete(_ context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

func (m *MemoryProvider) Close() error {
	m.entries.Purge()
	return nil
}

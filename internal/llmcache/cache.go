package llmcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store persists cached responses keyed by fingerprint
type Store interface {
	// Get returns the cached response for a fingerprint, if present
	Get(ctx context.Context, fingerprint string) (string, bool, error)
	// Put stores a response under a fingerprint
	Put(ctx context.Context, fingerprint, response string) error
	// Invalidate removes a fingerprint from the store
	Invalidate(ctx context.Context, fingerprint string) error
}

// FillFunc produces a response when the cache has none
type FillFunc func(ctx context.Context) (string, error)

// Cache wraps a Store with single-flight request collapsing. Concurrent
// GetOrFill calls for the same fingerprint result in at most one FillFunc
// invocation; the other callers wait and share the result. Failed fills are
// never stored, so a later call retries.
type Cache struct {
	store Store
	group singleflight.Group
}

// New creates a cache over the given store. A nil store gets an in-memory
// store with no expiry.
func New(store Store) *Cache {
	if store == nil {
		store = NewMemoryStore(0)
	}
	return &Cache{store: store}
}

// Get returns the cached response for a fingerprint without filling
func (c *Cache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	return c.store.Get(ctx, fingerprint)
}

// GetOrFill returns the cached response for a fingerprint, invoking fill on a
// miss. The second return value reports whether the response came from the
// cache.
func (c *Cache) GetOrFill(ctx context.Context, fingerprint string, fill FillFunc) (string, bool, error) {
	if response, ok, err := c.store.Get(ctx, fingerprint); err != nil {
		return "", false, fmt.Errorf("cache lookup failed: %w", err)
	} else if ok {
		return response, true, nil
	}

	type fillResult struct {
		response string
		cached   bool
	}

	v, err, _ := c.group.Do(fingerprint, func() (any, error) {
		// Another caller may have filled between our miss and the flight
		if response, ok, err := c.store.Get(ctx, fingerprint); err == nil && ok {
			return fillResult{response: response, cached: true}, nil
		}

		response, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Put(ctx, fingerprint, response); err != nil {
			return nil, fmt.Errorf("cache store failed: %w", err)
		}
		return fillResult{response: response}, nil
	})
	if err != nil {
		return "", false, err
	}

	result := v.(fillResult)
	return result.response, result.cached, nil
}

// Invalidate removes a fingerprint from the underlying store
func (c *Cache) Invalidate(ctx context.Context, fingerprint string) error {
	return c.store.Invalidate(ctx, fingerprint)
}

// memoryEntry is a cached response with its insertion time
type memoryEntry struct {
	response string
	storedAt time.Time
}

// MemoryStore is a process-local Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration // zero means entries never expire
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached response for a fingerprint, if present and fresh
func (s *MemoryStore) Get(_ context.Context, fingerprint string) (string, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[fingerprint]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if s.ttl > 0 && s.now().Sub(entry.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.entries, fingerprint)
		s.mu.Unlock()
		return "", false, nil
	}
	return entry.response, true, nil
}

// Put stores a response under a fingerprint
func (s *MemoryStore) Put(_ context.Context, fingerprint, response string) error {
	s.mu.Lock()
	s.entries[fingerprint] = memoryEntry{response: response, storedAt: s.now()}
	s.mu.Unlock()
	return nil
}

// Invalidate removes a fingerprint from the store
func (s *MemoryStore) Invalidate(_ context.Context, fingerprint string) error {
	s.mu.Lock()
	delete(s.entries, fingerprint)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

package analyticsstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/resto-analytics/internal/domain/analytics"
)

type entry struct {
	result    analytics.Result
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the analytics store for
// tests/dev. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements analytics.Store.
func (s *MemoryStore) Get(_ context.Context, key string) (analytics.Result, bool, error) {
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return analytics.Result{}, false, nil
	}
	if !record.expiresAt.IsZero() && record.expiresAt.Before(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return analytics.Result{}, false, nil
	}
	return record.result, true, nil
}

// Save implements analytics.Store.
func (s *MemoryStore) Save(_ context.Context, key string, result analytics.Result, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = entry{result: result, expiresAt: exp}
	return nil
}

var _ analytics.Store = (*MemoryStore)(nil)

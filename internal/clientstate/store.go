package clientstate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrKeyRequired = errors.New("clientstate: key is required")

// Store is a small key/value store for per-visitor UI state. Entries expire
// after their TTL; a zero TTL means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type entry struct {
	value   string
	expires time.Time
}

// MemoryStore keeps entries in process. Expired entries are dropped lazily
// on read.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

var _ Store = (*MemoryStore)(nil)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used to evaluate expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{now: time.Now, entries: map[string]entry{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = map[string]entry{}
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, including expired ones not yet
// evicted.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

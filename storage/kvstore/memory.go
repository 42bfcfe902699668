// Package kvstore implements core.KeyValueStore in memory and on Redis.
package kvstore

import (
	"context"
	"sync"
	"time"

	"github.com/MDharunPrasad/giglabs-intern-venture/core"
)

var nowFunc = time.Now // mockable

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero: never
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is a process-local store. Expired keys are dropped lazily.
type MemoryStore struct {
	data  map[string]memoryEntry
	mutex sync.Mutex
}

var _ core.KeyValueStore = (*MemoryStore)(nil) // interface compliance check

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry)}
}

func (s *MemoryStore) entry(value string, ttl time.Duration) memoryEntry {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = nowFunc().Add(ttl)
	}
	return e
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = s.entry(value, ttl)
	return nil
}

func (s *MemoryStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if e, ok := s.data[key]; ok && !e.expired(nowFunc()) {
		return false, nil
	}
	s.data[key] = s.entry(value, ttl)
	return true, nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.data[key]
	if ok && e.expired(nowFunc()) {
		delete(s.data, key)
		return false, nil
	}
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

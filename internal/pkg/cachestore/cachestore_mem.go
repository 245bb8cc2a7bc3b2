package cachestore

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	val     string
	expires time.Time
}

type MemCacheStore struct {
	mu   sync.Mutex
	data map[string]memEntry
	ttl  time.Duration
}

var _ CacheStore = (*MemCacheStore)(nil)

func NewMemCacheStore(ttl time.Duration) *MemCacheStore {
	return &MemCacheStore{
		data: make(map[string]memEntry),
		ttl:  ttl,
	}
}

func (s *MemCacheStore) Get(ctx context.Context, name, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := cacheKey(name, key)
	e, ok := s.data[k]
	if !ok {
		return "", nil
	}
	if s.ttl > 0 && time.Now().After(e.expires) {
		delete(s.data, k)
		return "", nil
	}
	return e.val, nil
}

func (s *MemCacheStore) Set(ctx context.Context, name, key string, val string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[cacheKey(name, key)] = memEntry{val: val, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemCacheStore) Purge(ctx context.Context, name, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, cacheKey(name, key))
	return nil
}

package blobstore

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a Store and adds whole-blob read caching.
//
// Concurrent Gets for the same uncached blob are deduplicated with
// singleflight so a slow backend (object storage) is hit at most once.
// Writes invalidate the cached entry before passing through.
type CachingStore struct {
	inner Store

	mu    sync.RWMutex
	cache map[string][]byte
	sf    singleflight.Group
}

// NewCachingStore creates a new CachingStore.
func NewCachingStore(inner Store) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: make(map[string][]byte),
	}
}

// Get reads the blob, serving from cache when possible.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}

	v, err, _ := s.sf.Do(name, func() (any, error) {
		data, err := s.inner.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[name] = data
		s.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data = v.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put writes through to the inner store and refreshes the cache entry.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	s.mu.Lock()
	s.cache[name] = copied
	s.mu.Unlock()
	return nil
}

// Delete removes the blob and its cache entry.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List passes through to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}

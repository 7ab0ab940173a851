package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a Store and rate-limits operations against it.
//
// Object storage backends enforce per-prefix request quotas; bulk library
// syncs can trip them. Each operation waits on a shared token bucket
// before reaching the inner store.
type ThrottledStore struct {
	inner   Store
	limiter *rate.Limiter
}

// NewThrottledStore creates a ThrottledStore allowing opsPerSecond
// sustained operations with the given burst size.
func NewThrottledStore(inner Store, opsPerSecond float64, burst int) *ThrottledStore {
	return &ThrottledStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(opsPerSecond), burst),
	}
}

// Get reads the entire blob.
func (s *ThrottledStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Get(ctx, name)
}

// Put writes a blob.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List returns all blob names with the given prefix.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.List(ctx, prefix)
}

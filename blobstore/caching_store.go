package blobstore

import (
	"context"
	"sync"

	"github.com/hupe1980/stablevec/internal/cache"
)

// CachingStore wraps a BlobStore and keeps recently read blobs in memory.
// Writes and deletes go through to the inner store and invalidate the entry
// once the inner store has applied them.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU

	// epoch counts invalidations. A read only fills the cache if no
	// invalidation happened while it was in flight.
	mu    sync.Mutex
	epoch uint64
}

var _ BlobStore = (*CachingStore)(nil)

// NewCachingStore creates a new CachingStore holding at most capacity bytes.
func NewCachingStore(inner BlobStore, capacity int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity),
	}
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.cache.Delete(name)
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	err := s.inner.Put(ctx, name, data)
	s.invalidate(name)
	return err
}

// Get serves the blob from memory if present and reads through otherwise.
// The returned slice is shared with the cache and must not be modified.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return data, nil
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.cache.Set(name, data)
	}
	s.mu.Unlock()
	return data, nil
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.invalidate(name)
	return err
}

// List is passed through uncached.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"techshop/models"
	"techshop/repositories"
)

var errWriteFailed = errors.New("write failed")

// flakyStore is a memory store whose writes can be switched off.
type flakyStore struct {
	*repositories.MemoryStore

	mu       sync.Mutex
	failPuts bool
	puts     int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: repositories.NewMemoryStore()}
}

func (s *flakyStore) setFailing(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPuts = fail
}

func (s *flakyStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failPuts
	if !fail {
		s.puts++
	}
	s.mu.Unlock()

	if fail {
		return errWriteFailed
	}
	return s.MemoryStore.Put(ctx, key, value)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.failPuts
	s.mu.Unlock()

	if fail {
		return errWriteFailed
	}
	return s.MemoryStore.Delete(ctx, key)
}

func newTestCatalog(t *testing.T, store repositories.RecordStore) *CatalogService {
	t.Helper()
	return NewCatalogService(context.Background(), repositories.NewListRepository[models.Product](store, "techShopProducts"))
}

func newTestCart(t *testing.T, store repositories.RecordStore) *CartService {
	t.Helper()
	return NewCartService(context.Background(), repositories.NewListRepository[models.CartItem](store, "techShopCart"))
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

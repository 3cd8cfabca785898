package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// ErrRecordNotFound is returned by RecordStore.Get when the key has never been written.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore is durable key-value storage holding one serialized value per key.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ListRepository reads and writes a whole JSON list under a single key.
type ListRepository[T any] struct {
	store RecordStore
	key   string
}

func NewListRepository[T any](store RecordStore, key string) *ListRepository[T] {
	return &ListRepository[T]{store: store, key: key}
}

func (r *ListRepository[T]) Key() string {
	return r.key
}

// Load returns the stored list. Missing, unreadable or malformed records yield an empty list.
func (r *ListRepository[T]) Load(ctx context.Context) []T {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			log.Printf("Failed to read %s, starting empty: %v", r.key, err)
		}
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Malformed record %s, starting empty: %v", r.key, err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Save replaces the stored list with items.
func (r *ListRepository[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.key, err)
	}
	return nil
}

// Clear erases the stored record.
func (r *ListRepository[T]) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("failed to clear %s: %w", r.key, err)
	}
	return nil
}

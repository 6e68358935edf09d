package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dispatchflow/pkg/platform/sentinel"
)

// Collection is an ordered list of records stored under a single key, most
// recent first. Every operation loads the whole list and writes it back; a
// mutex serializes mutations within the process, but two processes writing the
// same key concurrently can lose updates.
type Collection[T any] struct {
	mu    sync.Mutex
	store Store
	key   string
	id    func(T) string
}

// NewCollection binds a collection to key. id returns the record identifier
// used by Find, Remove and Update.
func NewCollection[T any](store Store, key string, id func(T) string) *Collection[T] {
	return &Collection[T]{store: store, key: key, id: id}
}

// Key returns the storage key backing the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// All returns every record, newest first. A missing key is an empty list.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Find returns the record with the given identifier or sentinel.ErrNotFound.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if c.id(item) == id {
			return item, nil
		}
	}
	return zero, sentinel.ErrNotFound
}

// Prepend inserts item at the head. A record with the same identifier already
// present yields sentinel.ErrConflict and leaves the list untouched.
func (c *Collection[T]) Prepend(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	id := c.id(item)
	for _, existing := range items {
		if c.id(existing) == id {
			return fmt.Errorf("%s %s: %w", c.key, id, sentinel.ErrConflict)
		}
	}
	next := make([]T, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)
	return c.store.Put(ctx, c.key, next)
}

// Remove deletes the record with the given identifier. Missing records yield
// sentinel.ErrNotFound.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next := make([]T, 0, len(items))
	for _, item := range items {
		if c.id(item) != id {
			next = append(next, item)
		}
	}
	if len(next) == len(items) {
		return sentinel.ErrNotFound
	}
	return c.store.Put(ctx, c.key, next)
}

// Update applies fn to the record with the given identifier in place and
// stores the result. fn returning an error aborts without writing.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.id(items[i]) != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return zero, err
		}
		if err := c.store.Put(ctx, c.key, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}
	return zero, sentinel.ErrNotFound
}

// load must be called with mu held.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	err := c.store.Get(ctx, c.key, &items)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

package cache

import (
	"context"
	"sync"
)

type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// IDCache memoizes values by numeric id for the lifetime of its owner.
// There is no eviction and no TTL: entries are only ever added.
type IDCache[T any] struct {
	mu      sync.Mutex
	entries map[int]T
	hits    uint64
	misses  uint64
}

func NewIDCache[T any]() *IDCache[T] {
	return &IDCache[T]{entries: make(map[int]T)}
}

func (c *IDCache[T]) Get(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[id]
	return value, ok
}

func (c *IDCache[T]) Set(id int, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = value
}

func (c *IDCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *IDCache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func (c *IDCache[T]) lookup(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[id]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return value, ok
}

// GetOrCompute returns the cached value for id or computes and stores it.
// The lock is not held while compute runs, so concurrent misses for the same id
// each call compute and the last one to finish wins. Failed computations are not stored.
func (c *IDCache[T]) GetOrCompute(ctx context.Context, id int, compute func(ctx context.Context, id int) (T, error)) (T, error) {
	if value, ok := c.lookup(id); ok {
		return value, nil
	}
	value, err := compute(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(id, value)
	return value, nil
}

package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/aretw0/turing/pkg/ports"
)

// Cache implements ports.ResultCache in memory with least-recently-used eviction.
// Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type entry struct {
	key   string
	value []byte
}

// NewCache creates a cache holding at most capacity entries. A capacity below 1 means unbounded.
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns a copy of the value stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	c.order.MoveToFront(el)
	return clone(el.Value.(*entry).value), nil
}

// Set stores a copy of value under key, evicting the least recently used entry when full.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).value = clone(value)
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, value: clone(value)})
	if c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

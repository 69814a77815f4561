package cache

import (
	"container/list"
	"context"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const (
	DefaultCapacity        = 500
	DefaultTTL             = 10 * time.Minute
	DefaultCleanupInterval = time.Minute
)

type entry[K comparable, V any] struct {
	key        K
	value      V
	insertedAt time.Time
}

// TTLCache is a bounded key/value cache. Once more than capacity entries are
// stored the oldest insertion is evicted; entries older than ttl are misses
// on lookup whether or not the cleanup loop has purged them yet.
type TTLCache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]*list.Element
	order    *list.List // front is the oldest insertion
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func NewTTLCache[K comparable, V any](capacity int, ttl time.Duration) *TTLCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &TTLCache[K, V]{
		items:    make(map[K]*list.Element),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*entry[K, V])
	if c.expired(e) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. Overwriting an existing key counts as a fresh
// insertion for both eviction order and TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}

	c.items[key] = c.order.PushBack(&entry[K, V]{
		key:        key,
		value:      value,
		insertedAt: c.now(),
	})

	for len(c.items) > c.capacity {
		c.removeElement(c.order.Front())
	}
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Clear drops every entry.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.order.Init()
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Cleanup purges expired entries and returns how many were removed.
func (c *TTLCache[K, V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	// Insertion order matches age order, so the walk stops at the first live entry.
	for el := c.order.Front(); el != nil; {
		e := el.Value.(*entry[K, V])
		if !c.expired(e) {
			break
		}
		next := el.Next()
		c.removeElement(el)
		removed++
		el = next
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (c *TTLCache[K, V]) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := c.Cleanup(); n > 0 {
					log.Printf("[CACHE] Purged %d expired entries", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *TTLCache[K, V]) expired(e *entry[K, V]) bool {
	return c.now().Sub(e.insertedAt) > c.ttl
}

func (c *TTLCache[K, V]) removeElement(el *list.Element) {
	if el == nil {
		return
	}
	e := el.Value.(*entry[K, V])
	c.order.Remove(el)
	delete(c.items, e.key)
}

// HeatmapCache holds one habit's year of cells per YearCacheKey.
type HeatmapCache = TTLCache[string, []domain.HeatmapCell]

var _ domain.HeatmapCache = (*HeatmapCache)(nil)

func NewHeatmapCache(capacity int, ttl time.Duration) *HeatmapCache {
	return NewTTLCache[string, []domain.HeatmapCell](capacity, ttl)
}

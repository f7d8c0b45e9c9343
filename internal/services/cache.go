package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"orders-dashboard/internal/models"
)

// Loader produces the enriched order set for an inclusive date range. The
// cache invokes it on a miss or after expiry.
type Loader func(ctx context.Context, start, end time.Time) ([]models.Order, error)

type cacheEntry struct {
	orders     []models.Order
	computedAt time.Time
}

// Cache memoizes loader results per (start, end) key with a fixed TTL.
// Expiry is measured from computation time; a hit does not refresh it.
// Concurrent requests for the same key are coalesced so the loader runs once.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	group   singleflight.Group
	load    Loader
}

func NewCache(load Loader, ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
		load:    load,
	}
}

func cacheKey(start, end time.Time) string {
	return start.Format("2006-01-02") + "|" + end.Format("2006-01-02")
}

func (c *Cache) lookup(key string) ([]models.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.computedAt) >= c.ttl {
		return nil, false
	}
	return entry.orders, true
}

// Get returns the cached order set for the range, invoking the loader on a
// miss. Loader errors are returned as-is and nothing is cached for them.
func (c *Cache) Get(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	key := cacheKey(start, end)

	if orders, ok := c.lookup(key); ok {
		return orders, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A coalesced caller may have populated the entry already.
		if orders, ok := c.lookup(key); ok {
			return orders, nil
		}

		orders, err := c.load(ctx, start, end)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{orders: orders, computedAt: c.now()}
		c.mu.Unlock()

		return orders, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Order), nil
}

// Len reports the number of cached ranges, expired entries included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

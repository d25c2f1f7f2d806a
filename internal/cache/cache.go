// Package cache provides time-bounded memoization of fetched price history.
// It is the only persistent state in the valuation pipeline; entries are
// rebuilt lazily after expiry or invalidation and carry no durability
// guarantee.
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
)

// Clock supplies the current time. Injected so TTL expiry is testable
// without real delays.
type Clock func() time.Time

// PriceCache memoizes fetched price matrices keyed by symbol set and date
// range. Reads take a shared lock; Invalidate swaps in a fresh map rather
// than mutating entries in place, so a concurrent reader never observes a
// torn entry.
type PriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry
}

type entry struct {
	matrix   *model.PriceMatrix
	storedAt time.Time
}

// New creates a PriceCache with the given TTL. A nil clock defaults to
// time.Now.
func New(ttl time.Duration, now Clock) *PriceCache {
	if now == nil {
		now = time.Now
	}
	return &PriceCache{
		ttl:     ttl,
		now:     now,
		entries: map[string]entry{},
	}
}

// Key builds the cache key for a symbol set and date range. The symbol set
// is sorted so the key is independent of request order.
func Key(symbols []string, start, end time.Time) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)

	return strings.Join(sorted, ",") + "|" + start.Format("2006-01-02") + "|" + end.Format("2006-01-02")
}

// Get returns the cached matrix for key, or false when the key is absent
// or its entry has outlived the TTL. Expired entries are left in place;
// Set overwrites them on the next compute.
func (c *PriceCache) Get(key string) (*model.PriceMatrix, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.matrix, true
}

// Set stores a matrix under key, stamped with the current time.
func (c *PriceCache) Set(key string, matrix *model.PriceMatrix) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{matrix: matrix, storedAt: c.now()}
}

// Invalidate drops every entry immediately. The map is replaced wholesale;
// in-flight readers keep the snapshot they already hold.
func (c *PriceCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]entry{}
}

// Len reports the number of entries currently held, expired or not.
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

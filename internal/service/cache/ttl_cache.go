package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	v   []byte
	exp time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.exp.IsZero() && now.After(e.exp)
}

const defaultMaxEntries = 4096

// TTLCache is the in-process fallback used when Redis is disabled. It holds
// at most max entries; a full cache first drops expired entries and then the
// entry closest to expiry.
type TTLCache struct {
	mu  sync.Mutex
	m   map[string]entry
	max int
	now func() time.Time
}

type TTLOption func(*TTLCache)

func WithMaxEntries(n int) TTLOption {
	return func(c *TTLCache) {
		if n > 0 {
			c.max = n
		}
	}
}

func NewTTLCache(opts ...TTLOption) *TTLCache {
	c := &TTLCache{m: make(map[string]entry), max: defaultMaxEntries, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		delete(c.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now()
	e := entry{v: append([]byte(nil), value...)}
	if ttl > 0 {
		e.exp = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; !ok && len(c.m) >= c.max {
		c.evict(now)
	}
	c.m[key] = e
	return nil
}

// evict makes room for one entry. Callers hold mu.
func (c *TTLCache) evict(now time.Time) {
	var victim string
	var soonest time.Time
	for k, e := range c.m {
		if e.expired(now) {
			delete(c.m, k)
			continue
		}
		if !e.exp.IsZero() && (soonest.IsZero() || e.exp.Before(soonest)) {
			victim, soonest = k, e.exp
		}
	}
	if len(c.m) < c.max {
		return
	}
	if victim == "" {
		for k := range c.m {
			victim = k
			break
		}
	}
	delete(c.m, victim)
}

// Len counts entries, expired ones included until they are read or evicted.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

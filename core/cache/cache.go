package cache

import (
	"sync"
	"time"
)

// Cache is an in-memory TTL cache for upstream entities.
//
// Every Set schedules its own eviction timer. A later Set on the same key
// supersedes the entry; the superseded timer still fires but is a no-op
// because eviction is tied to the insertion it was scheduled for. A TTL of
// zero or less disables expiry entirely.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
}

type entry struct {
	value any
	timer *time.Timer
}

// New creates a cache whose entries expire after ttl. ttl <= 0 means never.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Get returns the value stored under key, if present.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key and schedules its eviction. Empty keys and nil
// values are ignored.
func (c *Cache) Set(key string, value any) {
	if key == "" || value == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{value: value}
	if c.ttl > 0 {
		e.timer = time.AfterFunc(c.ttl, func() { c.expire(key, e) })
	}
	c.entries[key] = e
}

// Remove evicts key immediately and cancels its pending timer.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.entries, key)
	}
}

// Extend restarts the expiry countdown for key, if present. Unlike Set, this
// cancels the entry's pending timer before rescheduling, so the full TTL
// applies from now.
func (c *Cache) Extend(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old, ok := c.entries[key]
	if !ok || c.ttl <= 0 {
		return
	}
	if old.timer != nil {
		old.timer.Stop()
	}

	// The old timer may have already fired and be waiting on the lock, in
	// which case Stop is too late. A fresh entry makes its eviction guard
	// miss, the same way a superseding Set does.
	e := &entry{value: old.value}
	e.timer = time.AfterFunc(c.ttl, func() { c.expire(key, e) })
	c.entries[key] = e
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// expire removes key only if it still holds the insertion the timer was
// scheduled for. A timer left over from a superseded Set must not evict the
// fresher entry.
func (c *Cache) expire(key string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries[key]; ok && cur == e {
		delete(c.entries, key)
	}
}

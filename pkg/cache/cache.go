// Package cache is the in-process list cache used when Redis is disabled or unreachable.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type Item struct {
	Value      []byte
	Expiration int64
}

type Cache struct {
	items map[string]Item
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// NewCache creates a cache and starts its expiry sweeper. Call Close to stop it.
func NewCache(sweepInterval time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]Item),
		stop:  make(chan struct{}),
		now:   time.Now,
	}
	if sweepInterval > 0 {
		go c.startGC(sweepInterval)
	}
	return c
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	c.items[key] = Item{
		Value:      buf,
		Expiration: c.now().Add(ttl).UnixNano(),
	}
	return nil
}

// Get returns the cached bytes and whether they were present and fresh
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || c.now().UnixNano() > item.Expiration {
		return nil, false, nil
	}
	return item.Value, true, nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// DeletePrefix drops every key starting with prefix
func (c *Cache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *Cache) startGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now().UnixNano()
	for k, v := range c.items {
		if now > v.Expiration {
			delete(c.items, k)
		}
	}
}

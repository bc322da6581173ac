package securestore

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cached is a write-through cache in front of a Store. It keeps decrypted
// documents in memory so repeated session reads skip the database and the
// cipher. Misses are stored as well, so absent keys are cached too.
type Cached struct {
	mu    sync.Mutex
	inner Store
	cache *expirable.LRU[string, []byte]
}

// NewCached wraps inner with an LRU of size entries that expire after ttl.
func NewCached(inner Store, size int, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (c *Cached) Save(ctx context.Context, key string, value any) error {
	doc, err := encode(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.inner.Save(ctx, key, json.RawMessage(doc)); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, doc)
	return nil
}

func (c *Cached) ReadRaw(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.cache.Get(key); ok {
		return slices.Clone(doc), nil
	}

	doc, err := c.inner.ReadRaw(ctx, key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, doc)
	return slices.Clone(doc), nil
}

func (c *Cached) Read(ctx context.Context, key string, dst any) (bool, error) {
	doc, err := c.ReadRaw(ctx, key)
	if err != nil || doc == nil {
		return false, err
	}
	if err := decode(doc, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cached) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(key)
	return c.inner.Delete(ctx, key)
}

// Purge drops every cached entry.
func (c *Cached) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

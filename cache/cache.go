package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Catalog cache keys. Admin writes must invalidate the listing keys plus the
// per-item key of whatever they touched.
const (
	MenuListKey     = "menus:all"
	FeaturedListKey = "menus:featured"
	CategoryListKey = "categories:all"
)

func MenuItemKey(id uint) string {
	return fmt.Sprintf("menus:%d", id)
}

// Store is the read-through cache in front of the catalog. It is injected
// into controllers rather than imported as package state so tests can build
// an isolated instance per case.
type Store interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	Delete(keys ...string)
}

// MemoryStore wraps go-cache. Entries only ever leave by TTL expiry or
// explicit invalidation; the catalog is small enough that memory pressure
// is not a concern.
type MemoryStore struct {
	c *gocache.Cache
}

func NewMemoryStore(defaultTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		c: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *MemoryStore) Get(key string) (interface{}, bool) {
	return m.c.Get(key)
}

func (m *MemoryStore) Set(key string, value interface{}) {
	m.c.SetDefault(key, value)
}

func (m *MemoryStore) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *MemoryStore) Delete(keys ...string) {
	for _, key := range keys {
		m.c.Delete(key)
	}
}

package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type (
	// Cacher interface describes something, who can read and write data into fast storage (faster than local
	// filesystem).
	Cacher interface {
		// Get an entry from the cache. Returns the entry or nil, and a bool indicating whether the key was found.
		Get(key string) (*Entry, bool)

		// Set an entry to the cache, replacing any existing entry.
		Set(key string, ttl time.Duration, entry *Entry)

		// Count returns the number of entries in the cache.
		Count() uint32
	}

	// Entry is structured cache entry. Data holds the raw file bytes; callers wrap it into their own reader,
	// so concurrent readers never share seek state.
	Entry struct {
		ModifiedTime time.Time
		Data         []byte
	}
)

// InMemoryCache implements Cacher interface and uses memory as a storage.
type InMemoryCache struct {
	engine *cache.Cache
}

// NewInMemoryCache creates cacher implementation, that uses memory as a storage.
func NewInMemoryCache(cleanupInterval time.Duration) *InMemoryCache {
	return &InMemoryCache{
		engine: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Get an entry from the cache. Returns the entry or nil, and a bool indicating whether the key was found.
func (c *InMemoryCache) Get(key string) (*Entry, bool) {
	entry, ok := c.engine.Get(key)

	if entry == nil {
		return nil, ok
	}

	return entry.(*Entry), ok
}

// Set an entry to the cache, replacing any existing entry. If the duration is -1, the entry never expires.
func (c *InMemoryCache) Set(key string, ttl time.Duration, entry *Entry) {
	c.engine.Set(key, entry, ttl)
}

// Count returns the number of entries in the cache. This may include entries that have expired, but have not yet
// been cleaned up.
func (c *InMemoryCache) Count() uint32 {
	return uint32(c.engine.ItemCount())
}

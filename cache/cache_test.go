package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache_CRD(t *testing.T) {
	cache := NewInMemoryCache(time.Millisecond * 3)

	entry, exists := cache.Get("foo")
	assert.Nil(t, entry)
	assert.False(t, exists)
	assert.Equal(t, uint32(0), cache.Count())

	now := time.Now()
	data := []byte("abc")
	ttl := time.Millisecond * 7

	cache.Set("foo", ttl, &Entry{
		ModifiedTime: now,
		Data:         data,
	})

	entry, exists = cache.Get("foo")
	assert.True(t, exists)
	assert.Equal(t, uint32(1), cache.Count())
	assert.Equal(t, now, entry.ModifiedTime)
	assert.Equal(t, []byte("abc"), entry.Data)

	time.Sleep(ttl)

	entry, exists = cache.Get("foo")
	assert.Nil(t, entry)
	assert.False(t, exists)

	time.Sleep(ttl)

	assert.Equal(t, uint32(0), cache.Count())
}

func TestInMemoryCache_Replace(t *testing.T) {
	cache := NewInMemoryCache(time.Minute)

	cache.Set("foo", time.Minute, &Entry{Data: []byte("first")})
	cache.Set("foo", time.Minute, &Entry{Data: []byte("second")})

	entry, exists := cache.Get("foo")
	assert.True(t, exists)
	assert.Equal(t, []byte("second"), entry.Data)
	assert.Equal(t, uint32(1), cache.Count())
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(ttl time.Duration) (*Cache[string], *time.Time) {
	now := time.Unix(1_700_000_000, 0)
	c := New[string](ttl)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	defer c.Close()

	c.Set("52.52,13.40", "Rainy")

	value, ok := c.Get("52.52,13.40")
	assert.True(t, ok)
	assert.Equal(t, "Rainy", value)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c, now := newTestCache(time.Minute)
	defer c.Close()

	c.Set("k", "v")
	*now = now.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Len())
	c.removeExpired()
	assert.Equal(t, 0, c.Len())
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c, _ := newTestCache(0)
	defer c.Close()

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	defer c.Close()

	c.Set("k", "v")
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_CloseTwice(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Close()
	assert.NotPanics(t, c.Close)
}

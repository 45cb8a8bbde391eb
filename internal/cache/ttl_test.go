package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock gives tests deterministic control over entry age.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache(ttl time.Duration) (*TTLCache[string], *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	c := NewTTLCache[string](ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTLCacheGetSet(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	c.Set("k", "v2")
	got, _ = c.Get("k")
	assert.Equal(t, "v2", got, "Set must replace existing entries")
}

func TestTTLCacheExpiry(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute)

	c.Set("k", "v")
	clock.Advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry within TTL must survive")

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry past TTL must expire")
	assert.Equal(t, 0, c.Len(), "expired read must delete lazily")
}

func TestTTLCacheSetRefreshesAge(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute)

	c.Set("k", "old")
	clock.Advance(50 * time.Second)
	c.Set("k", "new")
	clock.Advance(30 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok, "rewrite must reset the entry clock")
	assert.Equal(t, "new", got)
}

func TestTTLCacheCleanupExpired(t *testing.T) {
	t.Parallel()
	c, clock := newTestCache(time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	clock.Advance(30 * time.Second)
	c.Set("c", "3")
	clock.Advance(45 * time.Second) // a,b now 75s old; c 45s old

	evicted := c.CleanupExpired()
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("c")
	assert.True(t, ok)
}

func TestTTLCacheRemove(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(time.Minute)

	c.Set("k", "v")
	c.Remove("k")
	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Remove("never-existed") // no panic
}

func TestTTLCacheDefaultTTL(t *testing.T) {
	t.Parallel()
	c := NewTTLCache[int](0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestTTLCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + n))
				c.Set(key, "v")
				c.Get(key)
				c.CleanupExpired()
			}
		}(i)
	}
	wg.Wait()
}

package cache

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTL_Expiry(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	c := New[string](30*time.Second, WithClock[string](clk.Now))

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clk.Advance(29 * time.Second)
	_, ok = c.Get("k")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry expires exactly at ttl")
}

func TestTTL_SetSweepsExpiredEntries(t *testing.T) {
	clk := &clock{now: time.Unix(1000, 0)}
	c := New[int](30*time.Second, WithClock[int](clk.Now))

	for i := 0; i < 1000; i++ {
		c.Set("locomotives?page="+strconv.Itoa(i), i)
		clk.Advance(time.Minute)
	}
	assert.LessOrEqual(t, c.Len(), 2)
	_, ok := c.Get("locomotives?page=0")
	assert.False(t, ok)

	c.Set("a", 1)
	clk.Advance(10 * time.Second)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Len(), "live entries are kept")
	_, ok = c.Get("a")
	assert.True(t, ok)

	clk.Advance(30 * time.Second)
	c.DeleteExpired()
	assert.Zero(t, c.Len())
}

func TestTTL_DoCachesResult(t *testing.T) {
	c := New[int](time.Minute)
	var calls int32
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.Do(context.Background(), "k", load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	c.Invalidate("k")
	_, err := c.Do(context.Background(), "k", load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestTTL_DoDeduplicatesConcurrentLoads(t *testing.T) {
	c := New[int](time.Minute)
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Do(context.Background(), "locos?page=1", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}

func TestTTL_DoDoesNotCacheErrors(t *testing.T) {
	c := New[int](time.Minute)
	boom := errors.New("boom")
	_, err := c.Do(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	c.Set("a", 1)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestKey_IgnoresParameterOrder(t *testing.T) {
	a := url.Values{}
	a.Set("page", "1")
	a.Set("search", "br")
	b := url.Values{}
	b.Set("search", "br")
	b.Set("page", "1")

	assert.Equal(t, Key("locomotives", a), Key("locomotives", b))
	assert.Equal(t, "locomotives?page=1&search=br", Key("locomotives", a))
	assert.Equal(t, "locomotives", Key("locomotives", nil))
}

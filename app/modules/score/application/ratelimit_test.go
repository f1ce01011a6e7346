package scoreservice

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	clock := &fakeClock{now: fixedNow}
	l := NewSlidingWindowLimiter(60*time.Second, 20, clock.Now)

	for i := 0; i < 20; i++ {
		require.True(t, l.Allow("a"), "call %d", i+1)
	}
	assert.False(t, l.Allow("a"), "21st call in window")
	assert.True(t, l.Allow("b"), "keys are independent")
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	clock := &fakeClock{now: fixedNow}
	l := NewSlidingWindowLimiter(10*time.Second, 2, clock.Now)

	require.True(t, l.Allow("a"))
	clock.Advance(5 * time.Second)
	require.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	// first hit is now exactly window old and no longer counts
	clock.Advance(5 * time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	clock.Advance(10 * time.Second)
	assert.True(t, l.Allow("a"))
}

func TestSlidingWindowLimiter_RejectionsDoNotCount(t *testing.T) {
	clock := &fakeClock{now: fixedNow}
	l := NewSlidingWindowLimiter(10*time.Second, 1, clock.Now)

	require.True(t, l.Allow("a"))
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		assert.False(t, l.Allow("a"))
	}
	clock.Advance(5 * time.Second)
	assert.True(t, l.Allow("a"), "rejected calls must not extend the window")
}

func TestSlidingWindowLimiter_SweepsIdleKeys(t *testing.T) {
	clock := &fakeClock{now: fixedNow}
	l := NewSlidingWindowLimiter(time.Minute, 5, clock.Now)

	for i := 0; i < 50; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	assert.Equal(t, 50, l.Len())

	clock.Advance(2 * time.Minute)
	l.Allow("fresh")
	assert.Equal(t, 1, l.Len())
}

func TestSlidingWindowLimiter_Concurrent(t *testing.T) {
	l := NewSlidingWindowLimiter(time.Hour, 20, nil)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(20), allowed.Load())
}

func TestAllowAll(t *testing.T) {
	l := AllowAll()
	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow("x"))
	}
}

package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time      { return c.t }
func (c *fakeClock) add(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiterRequests(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(2, 1000, clock.now)
	ctx := context.Background()

	require.NoError(t, rl.AllowRequest(ctx))
	require.NoError(t, rl.AllowRequest(ctx))
	err := rl.AllowRequest(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "превышен лимит запросов")

	clock.add(30 * time.Second)
	require.NoError(t, rl.AllowRequest(ctx))
}

func TestRateLimiterTokens(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(60, 100, clock.now)
	ctx := context.Background()

	require.NoError(t, rl.AllowTokens(ctx, 80))
	require.Error(t, rl.AllowTokens(ctx, 30))
	require.Error(t, rl.AllowTokens(ctx, 200))

	clock.add(time.Hour)
	require.NoError(t, rl.AllowTokens(ctx, 30))
}

func TestRateLimiterConsumeAndStats(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(10, 100, clock.now)

	rl.ConsumeTokens(150)
	requests, tokens := rl.GetStats()
	assert.Equal(t, 10, requests)
	assert.Equal(t, 0, tokens)

	clock.add(30 * time.Minute)
	_, tokens = rl.GetStats()
	assert.Equal(t, 50, tokens)
}

func TestRateLimiterDefaults(t *testing.T) {
	requests, tokens := NewRateLimiter(0, 0).GetStats()
	assert.Equal(t, 60, requests)
	assert.Equal(t, 90000, tokens)
}

func TestRateLimiterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewRateLimiter(1, 1).AllowRequest(ctx), context.Canceled)
}

func TestRateLimiterKeepsRefillRemainder(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(3, 1000, clock.now) // один запрос каждые 20s
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.AllowRequest(ctx))
	}
	require.Error(t, rl.AllowRequest(ctx))

	clock.add(30 * time.Second)
	require.NoError(t, rl.AllowRequest(ctx))
	require.Error(t, rl.AllowRequest(ctx))

	// 10s остатка плюс 10s дают еще один полный интервал.
	clock.add(10 * time.Second)
	require.NoError(t, rl.AllowRequest(ctx))
}

func TestRateLimiterIdleFullBucketEarnsNoCredit(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(2, 1000, clock.now)
	ctx := context.Background()

	clock.add(50 * time.Second)
	require.NoError(t, rl.AllowRequest(ctx))
	require.NoError(t, rl.AllowRequest(ctx))

	clock.add(10 * time.Second)
	require.Error(t, rl.AllowRequest(ctx))
}

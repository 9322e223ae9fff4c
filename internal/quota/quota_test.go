package quota

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestConsumeEnforcesDailyLimit(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		res, err := c.Consume(ctx, "u1", 5, now)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, i, res.Used)
	}

	res, err := c.Consume(ctx, "u1", 5, now)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 5, res.Used)

	used, err := c.Used(ctx, "u1", now)
	require.NoError(t, err)
	assert.Equal(t, 5, used)

	ttl := mr.TTL("prodradar:views:u1:2026-03-14")
	assert.Equal(t, 25*time.Hour, ttl)
}

func TestConsumeBucketsPerDayAndUser(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()
	day1 := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)

	_, err := c.Consume(ctx, "u1", 1, day1)
	require.NoError(t, err)

	res, err := c.Consume(ctx, "u2", 1, day1)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = c.Consume(ctx, "u1", 1, day1.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestConsumeUnlimitedAndDisabled(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()
	now := time.Now()

	res, err := c.Consume(ctx, "agency", tier.Unlimited, now)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	used, err := c.Used(ctx, "agency", now)
	require.NoError(t, err)
	assert.Zero(t, used)

	var disabled *Counter
	res, err = disabled.Consume(ctx, "u1", 1, now)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = c.Consume(ctx, "u1", 0, now)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

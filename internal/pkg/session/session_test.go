package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRateLimiter_CheckLoginAttempt(t *testing.T) {
	mr, client := newTestRedis(t)
	rl := NewRateLimiter(client)
	ctx := context.Background()

	for i := 1; i <= maxLoginAttempts; i++ {
		allowed, remaining, err := rl.CheckLoginAttempt(ctx, "10.0.0.1", "a@example.com")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i)
		assert.Equal(t, int64(maxLoginAttempts-i), remaining)
	}

	allowed, remaining, err := rl.CheckLoginAttempt(ctx, "10.0.0.1", "a@example.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// other ip/email pairs have their own counter
	allowed, _, err = rl.CheckLoginAttempt(ctx, "10.0.0.2", "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	// the window expires
	mr.FastForward(loginAttemptWindow + time.Second)
	allowed, _, err = rl.CheckLoginAttempt(ctx, "10.0.0.1", "a@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_Reset(t *testing.T) {
	_, client := newTestRedis(t)
	rl := NewRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts+1; i++ {
		_, _, err := rl.CheckLoginAttempt(ctx, "ip", "e")
		require.NoError(t, err)
	}
	require.NoError(t, rl.ResetLoginAttempts(ctx, "ip", "e"))

	allowed, remaining, err := rl.CheckLoginAttempt(ctx, "ip", "e")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(maxLoginAttempts-1), remaining)
}

func TestRevocationList(t *testing.T) {
	mr, client := newTestRedis(t)
	rl := NewRevocationList(client)
	ctx := context.Background()

	revoked, err := rl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rl.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = rl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = rl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, rl.Revoke(ctx, "jti-2", 0))
	assert.False(t, mr.Exists("blacklist:jti-2"))
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "session:revoked:abc", Key("abc"))
}

func TestNilClientIsNoop(t *testing.T) {
	l := NewRedisList(nil)
	ctx := context.Background()
	require.NoError(t, l.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err := l.Revoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	var none *RedisList
	revoked, err = none.Revoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeSkipsExpiredToken(t *testing.T) {
	// Unreachable address: an attempted write would fail.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer rdb.Close()
	l := NewRedisList(rdb)
	assert.NoError(t, l.Revoke(context.Background(), "abc", time.Now().Add(-time.Minute)))
	assert.NoError(t, l.Revoke(context.Background(), "", time.Now().Add(time.Minute)))
	assert.Error(t, l.Revoke(context.Background(), "abc", time.Now().Add(time.Minute)))
}

// Package session deny-lists access tokens that were logged out before
// they expired.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations records and checks revoked access token ids (jti).
type Revocations interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

const keyPrefix = "session:revoked:"

// Key returns the Redis key under which jti is deny-listed.
func Key(jti string) string { return keyPrefix + jti }

// RedisList keeps one key per revoked token that expires together with
// the token.  A nil client turns every call into a no-op, so a server
// without Redis still honours token expiry but not early logout.
type RedisList struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisList(rdb *redis.Client) *RedisList {
	return &RedisList{rdb: rdb, now: time.Now}
}

func (l *RedisList) Revoke(ctx context.Context, jti string, exp time.Time) error {
	if l == nil || l.rdb == nil || jti == "" {
		return nil
	}
	ttl := exp.Sub(l.now())
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, Key(jti), 1, ttl).Err()
}

func (l *RedisList) Revoked(ctx context.Context, jti string) (bool, error) {
	if l == nil || l.rdb == nil || jti == "" {
		return false, nil
	}
	n, err := l.rdb.Exists(ctx, Key(jti)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n > 0, nil
}

// Package redisx wraps the Redis client used for cross-instance rate
// limiting. Redis is optional: when no address is configured the API falls
// back to the in-memory limiter.
package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New connects a client to the given address.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Ping verifies the connection.
func Ping(ctx context.Context, rdb *redis.Client) error {
	return rdb.Ping(ctx).Err()
}

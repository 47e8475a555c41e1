package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Observer7203/Online-Store-Test/internal/redisx"
)

// RedisRateLimiter is a fixed-window rate limiter backed by Redis, for
// deployments with more than one API instance. Counters are per key per
// window; the first increment sets the expiry.
type RedisRateLimiter struct {
	rdb     *redis.Client
	limit   int64
	window  time.Duration
	keyFunc func(r *http.Request) string
	logger  *slog.Logger
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window
// per client IP.
func NewRedisRateLimiter(rdb *redis.Client, limit int64, window time.Duration, logger *slog.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:     rdb,
		limit:   limit,
		window:  window,
		keyFunc: GetClientIP,
		logger:  logger,
	}
}

// Allow checks and counts one request for the key. Fails open: a Redis error
// admits the request rather than taking the API down with the cache.
func (rl *RedisRateLimiter) Allow(r *http.Request) bool {
	key := rl.keyFunc(r)
	window := time.Now().Unix() / int64(rl.window.Seconds())
	redisKey := fmt.Sprintf(redisx.KeyRateLimit, key, window)

	pipe := rl.rdb.TxPipeline()
	count := pipe.Incr(r.Context(), redisKey)
	pipe.Expire(r.Context(), redisKey, redisx.TTLRateLimit)
	if _, err := pipe.Exec(r.Context()); err != nil {
		rl.logger.Warn("rate limit check failed", "error", err.Error())
		return true
	}

	return count.Val() <= rl.limit
}

// Middleware returns an HTTP middleware that applies the limiter
func (rl *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(r) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeJSONError(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

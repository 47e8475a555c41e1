package redisx

import "time"

const (
	// Rate limit window counter: ratelimit:{key}:{window}
	KeyRateLimit = "ratelimit:%s:%d"
)

// TTLRateLimit bounds how long a window counter outlives its window.
var TTLRateLimit = 2 * time.Minute

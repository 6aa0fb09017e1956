package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR then PEXPIRE on the first hit gives a fixed window per key.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const rateLimitPrefix = "ratelimit:"

// RateLimiter counts requests per key in a fixed window shared by every
// instance pointing at the same Redis.
type RateLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow reports whether one more request for key fits in the window.
// Errors are returned to the caller, which decides whether to fail open.
func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if key == "" || limit <= 0 || window <= 0 {
		return true, nil
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	allowed, err := l.script.Run(ctx, l.client, []string{rateLimitPrefix + key}, ttl, limit).Int64()
	if err != nil {
		return true, fmt.Errorf("rate limit script: %w", err)
	}
	return allowed == 1, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ingestLockKey  = "lock:job-ingest"
	releaseTimeout = 2 * time.Second
)

// Deletes the key only while it still holds our token, so a run that
// outlived its TTL cannot release a newer run's lock.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// IngestLock implements ports.IngestLock with SET NX and a TTL.
type IngestLock struct {
	client  *redis.Client
	ttl     time.Duration
	release *redis.Script
}

func NewIngestLock(client *redis.Client, ttl time.Duration) *IngestLock {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &IngestLock{client: client, ttl: ttl, release: redis.NewScript(releaseScript)}
}

func (l *IngestLock) Acquire(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, ingestLockKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// The request context may already be cancelled when the run ends.
		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_ = l.release.Run(rctx, l.client, []string{ingestLockKey}, token).Err()
	}
	return release, true, nil
}

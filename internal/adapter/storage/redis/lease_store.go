package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease key only when it still holds our token.
// The check-and-del must be atomic: a lease that expired mid-run may have
// been acquired by another node, and deleting its key would let a third
// node in while the second still runs.
const releaseScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// LeaseStore implements ports.LeaseStore using Redis SET NX. Each job name
// maps to one key; holding the key is holding the lease.
type LeaseStore struct {
	client *goredis.Client
	prefix string
}

// NewLeaseStore creates a Redis-backed job lease store.
func NewLeaseStore(client *goredis.Client) *LeaseStore {
	return &LeaseStore{
		client: client,
		prefix: "job_lease:",
	}
}

// Acquire attempts to take the lease for a job. Returns the holder token
// and true on success, false when another node already holds it. The TTL
// bounds how long a crashed holder can block the job.
func (s *LeaseStore) Acquire(ctx context.Context, job string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.prefix+job, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis lease acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release gives up the lease if we still hold it. Releasing a lease that
// expired and moved to another holder is a no-op.
func (s *LeaseStore) Release(ctx context.Context, job string, token string) error {
	_, err := s.client.Eval(ctx, releaseScript, []string{s.prefix + job}, token).Result()
	if err != nil {
		return fmt.Errorf("redis lease release: %w", err)
	}
	return nil
}

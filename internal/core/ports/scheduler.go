package ports

import (
	"context"
	"time"
)

// LeaseStore is the cross-worker serialization mechanism for scheduled
// jobs. A job runs only while holding its lease; acquisition is atomic
// (SET NX semantics) and leases self-expire so a crashed holder cannot
// wedge the schedule.
type LeaseStore interface {
	// Acquire attempts to take the lease for a job. Returns a release token
	// and true on success, or false when another node holds it.
	Acquire(ctx context.Context, job string, ttl time.Duration) (string, bool, error)
	// Release frees the lease if the token still matches the holder.
	Release(ctx context.Context, job string, token string) error
}

package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// PaymentEventCache implements ports.PaymentEventCache using Redis. It is
// the fast path for webhook dedupe; the ledger's reference lookup remains
// the authoritative check when the cache misses.
type PaymentEventCache struct {
	client *goredis.Client
	prefix string
}

// NewPaymentEventCache creates a Redis-backed payment event cache.
func NewPaymentEventCache(client *goredis.Client) *PaymentEventCache {
	return &PaymentEventCache{
		client: client,
		prefix: "payment_event:",
	}
}

// Get retrieves the cached response for a gateway payment ID.
// Returns nil, nil if the key does not exist.
func (c *PaymentEventCache) Get(ctx context.Context, paymentID string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+paymentID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis payment event get: %w", err)
	}
	return val, nil
}

// Set stores the processed outcome for a gateway payment ID with TTL.
func (c *PaymentEventCache) Set(ctx context.Context, paymentID string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+paymentID, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis payment event set: %w", err)
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// LockStatus is the lifecycle state of a fund lock.
type LockStatus string

const (
	LockStatusActive   LockStatus = "ACTIVE"
	LockStatusReleased LockStatus = "RELEASED"
	LockStatusExpired  LockStatus = "EXPIRED"
)

// FundLock is a time-bounded hold reducing available balance without moving
// money. It transitions exactly once out of ACTIVE: to RELEASED by an
// explicit release, or to EXPIRED by the hourly sweep. Never deleted.
type FundLock struct {
	ID          uuid.UUID  `json:"id"`
	WalletID    uuid.UUID  `json:"wallet_id"`
	AmountPaise int64      `json:"amount_paise"`
	Reason      string     `json:"reason"`
	Status      LockStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
}

// IsActive reports whether the lock still reduces available balance.
func (l *FundLock) IsActive() bool {
	return l.Status == LockStatusActive
}

// IsExpired reports whether an active lock has passed its TTL.
func (l *FundLock) IsExpired(now time.Time) bool {
	return l.Status == LockStatusActive && now.After(l.ExpiresAt)
}

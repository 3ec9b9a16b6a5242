package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the read model consumed by the compliance resolver. The platform
// owns the user lifecycle; this engine only reads it.
type User struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	IsBlacklisted bool      `json:"is_blacklisted"`
	IsAnonymized  bool      `json:"is_anonymized"`
	CreatedAt     time.Time `json:"created_at"`
}

// KYCProfile is the KYC read model. RawStatus is whatever the upstream
// verification provider last wrote; the resolver normalizes it.
type KYCProfile struct {
	UserID    uuid.UUID `json:"user_id"`
	RawStatus string    `json:"raw_status"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the raw status column of the subscriptions
// read model.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusCompleted SubscriptionStatus = "COMPLETED"
)

// FrozenTerms is the contract subset captured at subscription creation.
// These fields may change only through the audited override workflow.
type FrozenTerms struct {
	PlanID             uuid.UUID `json:"plan_id"`
	MonthlyAmountPaise int64     `json:"monthly_amount_paise"`
	TotalCycles        int       `json:"total_cycles"`
	StartDate          time.Time `json:"start_date"`
}

// Fingerprint returns a deterministic digest of the frozen subset. It is
// stored at creation time and recomputed before any contract-linked
// mutation; a mismatch means the frozen fields were edited outside the
// override workflow.
func (t FrozenTerms) Fingerprint() string {
	canonical := fmt.Sprintf("%s|%d|%d|%s",
		t.PlanID, t.MonthlyAmountPaise, t.TotalCycles,
		t.StartDate.UTC().Format(time.RFC3339))
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// ChangedFields lists the frozen field names that differ from other.
func (t FrozenTerms) ChangedFields(other FrozenTerms) []string {
	var fields []string
	if t.PlanID != other.PlanID {
		fields = append(fields, "plan_id")
	}
	if t.MonthlyAmountPaise != other.MonthlyAmountPaise {
		fields = append(fields, "monthly_amount_paise")
	}
	if t.TotalCycles != other.TotalCycles {
		fields = append(fields, "total_cycles")
	}
	if !t.StartDate.Equal(other.StartDate) {
		fields = append(fields, "start_date")
	}
	return fields
}

// Subscription is the investment subscription with its frozen contract
// terms and integrity fingerprint.
type Subscription struct {
	ID               uuid.UUID          `json:"id"`
	UserID           uuid.UUID          `json:"user_id"`
	Terms            FrozenTerms        `json:"terms"`
	Status           SubscriptionStatus `json:"status"`
	TermsFingerprint string             `json:"-"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// OverrideStatus is the lifecycle state of a contract override record.
type OverrideStatus string

const (
	OverrideStatusApproved OverrideStatus = "APPROVED"
	OverrideStatusApplied  OverrideStatus = "APPLIED"
)

// OverridableFields enumerates the frozen fields an override may target.
var OverridableFields = map[string]bool{
	"monthly_amount_paise": true,
	"total_cycles":         true,
}

// ContractOverride is the audit record produced by the override workflow.
// Frozen fields are never edited directly; each change is represented by
// one of these, applied through the guard.
type ContractOverride struct {
	ID             uuid.UUID      `json:"id"`
	SubscriptionID uuid.UUID      `json:"subscription_id"`
	Field          string         `json:"field"`
	OldValue       string         `json:"old_value"`
	NewValue       string         `json:"new_value"`
	ActorID        uuid.UUID      `json:"actor_id"`
	Reason         string         `json:"reason"`
	Status         OverrideStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

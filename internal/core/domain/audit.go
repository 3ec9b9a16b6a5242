package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContractAuditKind classifies an event on the contract audit channel.
type ContractAuditKind string

const (
	AuditKindPaymentAmountMismatch ContractAuditKind = "PAYMENT_AMOUNT_MISMATCH"
	AuditKindSnapshotImmutability  ContractAuditKind = "SNAPSHOT_IMMUTABILITY_VIOLATION"
	AuditKindOverrideSchema        ContractAuditKind = "OVERRIDE_SCHEMA_VIOLATION"
	AuditKindContractIntegrity     ContractAuditKind = "CONTRACT_INTEGRITY"
	AuditKindOverrideApplied       ContractAuditKind = "OVERRIDE_APPLIED"
)

// ContractAuditEvent is one record on the dedicated append-only audit
// channel, kept separate from general logs. Written synchronously before
// any response is formed so the trail survives response failures.
type ContractAuditEvent struct {
	ID             uuid.UUID         `json:"id"`
	Kind           ContractAuditKind `json:"kind"`
	SubscriptionID *uuid.UUID        `json:"subscription_id,omitempty"`
	ActorID        *uuid.UUID        `json:"actor_id,omitempty"`
	IPAddress      string            `json:"ip_address"`
	URL            string            `json:"url"`
	Detail         string            `json:"detail"` // JSON string
	CreatedAt      time.Time         `json:"created_at"`
}

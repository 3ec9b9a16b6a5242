package ports

import (
	"context"
	"time"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AppendRequest holds validated input for a ledger append.
type AppendRequest struct {
	WalletID      uuid.UUID
	AmountPaise   int64 // positive = credit, negative = debit
	EntryType     domain.EntryType
	ReferenceType domain.ReferenceType
	ReferenceID   string
}

// LedgerService is the only write path into the ledger and the wallet
// projection.
type LedgerService interface {
	// Append runs the whole append atomically: wallet row lock, balance
	// computation, insufficient-balance check, entry insert, projection
	// update. An entry already holding the same reference is returned
	// instead of appended again, making Append idempotent per reference.
	Append(ctx context.Context, req AppendRequest) (*domain.LedgerEntry, error)
	// AppendInTx performs the same append inside a caller-owned transaction,
	// so composite operations (e.g. withdrawal settlement) stay atomic
	// without duplicating the append path.
	AppendInTx(ctx context.Context, tx pgx.Tx, req AppendRequest) (*domain.LedgerEntry, error)
	// GetBalance reads the cached projection. Advisory/display data only.
	GetBalance(ctx context.Context, walletID uuid.UUID) (*domain.Balance, error)
}

// FundLockService manages time-bounded holds on available balance.
type FundLockService interface {
	Lock(ctx context.Context, walletID uuid.UUID, amountPaise int64, reason string, ttl time.Duration) (*domain.FundLock, error)
	Release(ctx context.Context, lockID uuid.UUID) error
	// ReleaseExpired sweeps locks past their TTL. Returns the number
	// transitioned. Safe to re-run: each transition is conditional.
	ReleaseExpired(ctx context.Context) (int, error)
}

// ComplianceService derives eligibility state on demand. Results are never
// cached across requests.
type ComplianceService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (domain.ComplianceSnapshot, error)
	// AssertCan returns a structured INELIGIBLE_ACTION error carrying the
	// snapshot and unmet reasons when the user fails the good-standing gate.
	AssertCan(ctx context.Context, action string, userID uuid.UUID) error
}

// AuditMeta carries request provenance onto the contract audit channel.
type AuditMeta struct {
	ActorID   *uuid.UUID
	IPAddress string
	URL       string
}

// OverrideRequest is an admin-submitted contract override payload, already
// bound but not yet schema-validated.
type OverrideRequest struct {
	SubscriptionID uuid.UUID
	Field          string
	NewValue       string
	Reason         string
}

// ContractGuard enforces the two hard contract invariants and owns the
// override workflow.
type ContractGuard interface {
	// ConfirmPayment accepts a verified gateway event, checks the captured
	// amount against the contracted amount and, on match, writes the deposit
	// ledger entry. Applied overrides are already reflected in the frozen
	// terms. Redeliveries of the same gateway payment id are idempotent.
	ConfirmPayment(ctx context.Context, event domain.GatewayPaymentEvent, meta AuditMeta) (*domain.LedgerEntry, error)
	// ApplyOverride validates and applies an admin override to frozen terms,
	// producing an audit record rather than a silent edit.
	ApplyOverride(ctx context.Context, req OverrideRequest, meta AuditMeta) (*domain.ContractOverride, error)
	// GuardTermsUpdate rejects any frozen-field mutation arriving outside the
	// override workflow, naming the violated fields.
	GuardTermsUpdate(ctx context.Context, subID uuid.UUID, proposed domain.FrozenTerms, meta AuditMeta) error
	// VerifyIntegrity recomputes the stored terms fingerprint and reports
	// tampering.
	VerifyIntegrity(ctx context.Context, subID uuid.UUID) error
}

// WithdrawalService is the debit-reserving flow: compliance gate, daily
// limit, fund lock, then settlement.
type WithdrawalService interface {
	// Request gates on compliance and the explicit daily limit, then locks
	// the funds. The limit is a parameter, never read from a global.
	Request(ctx context.Context, userID uuid.UUID, amountPaise int64, maxDailyPaise int64, ttl time.Duration) (*domain.FundLock, error)
	// Settle writes the withdrawal ledger entry and releases the lock in one
	// transaction.
	Settle(ctx context.Context, lockID uuid.UUID, referenceID string) (*domain.LedgerEntry, error)
	Cancel(ctx context.Context, lockID uuid.UUID) error
}

// ReconciliationService runs the read-only audits. Neither check ever
// writes to wallets or the ledger.
type ReconciliationService interface {
	ReconcileBalances(ctx context.Context, alert bool) (*domain.ReconcileSummary, error)
	WalletReconcile(ctx context.Context) (*domain.ReconcileSummary, error)
}

// AuditTrail writes to the dedicated contract audit channel, synchronously,
// before any response is formed.
type AuditTrail interface {
	Record(ctx context.Context, kind domain.ContractAuditKind, subID *uuid.UUID, meta AuditMeta, detail any) error
}

// Notifier delivers operator alerts. Actual delivery (email etc.) belongs to
// the platform's notification system; implementations here only hand off.
type Notifier interface {
	Alert(ctx context.Context, subject, body string) error
}

// PaymentEventCache is the fast-path dedupe layer for gateway webhook
// redeliveries; the ledger reference lookup remains authoritative.
type PaymentEventCache interface {
	Get(ctx context.Context, gatewayPaymentID string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, gatewayPaymentID string, value []byte, ttl time.Duration) error
}

// TokenService validates admin JWTs issued by the platform.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AdminID uuid.UUID
	Role    string
}

package ports

import (
	"context"
	"time"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for wallet projections.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic
// row locking; projection writes only ever happen through them.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balancePaise, lockedBalancePaise int64) error
	// ScanBatch returns up to limit wallets with id > afterID ordered by id,
	// for keyset-paginated reconciliation scans.
	ScanBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Wallet, error)
}

// LedgerRepository defines persistence for the append-only ledger.
// There are deliberately no update or delete operations.
type LedgerRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	GetByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error)
	// GetByReferenceInTx is the transactional variant. The append path calls
	// it while holding the wallet row lock, so concurrent deliveries of the
	// same originating record serialize and the loser sees the winner's entry.
	GetByReferenceInTx(ctx context.Context, tx pgx.Tx, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error)
	// SumByWallet computes SUM(amount_paise) for a wallet. The authoritative
	// balance derivation used by reconciliation.
	SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
	// SumDebitsByTypeSince returns the absolute total debited for the given
	// entry type since the cutoff. Used for the daily withdrawal limit.
	SumDebitsByTypeSince(ctx context.Context, walletID uuid.UUID, entryType domain.EntryType, since time.Time) (int64, error)
}

// FundLockRepository defines persistence for fund locks.
type FundLockRepository interface {
	Create(ctx context.Context, tx pgx.Tx, lock *domain.FundLock) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FundLock, error)
	// Transition conditionally moves an ACTIVE lock to the given terminal
	// status. Returns false when the lock was not active, making release
	// idempotent.
	Transition(ctx context.Context, tx pgx.Tx, lockID uuid.UUID, to domain.LockStatus, releasedAt time.Time) (bool, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.FundLock, error)
	SumActiveByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// SubscriptionRepository defines persistence for subscriptions and their
// contract override records. UpdateTerms is the sanctioned path for frozen
// field changes; only the contract guard calls it.
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	UpdateTerms(ctx context.Context, tx pgx.Tx, subID uuid.UUID, terms domain.FrozenTerms, fingerprint string) error
	InsertOverride(ctx context.Context, tx pgx.Tx, o *domain.ContractOverride) error
	UpdateOverrideStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OverrideStatus) error
}

// UserRepository is the read-only view of platform-owned user and KYC data
// consumed by the compliance resolver.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetKYCProfile(ctx context.Context, userID uuid.UUID) (*domain.KYCProfile, error)
}

// AuditRepository is the append-only contract audit channel. No reads from
// the engine; the channel exists for investigators.
type AuditRepository interface {
	Append(ctx context.Context, ev *domain.ContractAuditEvent) error
}

// ReconciliationRepository persists discrepancy evidence and provides the
// set-based mismatch derivation used by the wallet-ledger check.
type ReconciliationRepository interface {
	InsertReport(ctx context.Context, r *domain.DiscrepancyReport) error
	// ListMismatched re-derives balances in SQL (wallets joined against
	// SUM(ledger_entries)) and returns only rows whose delta is non-zero.
	ListMismatched(ctx context.Context, limit int) ([]domain.DiscrepancyReport, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. The ledger_entries table is
// append-only: this type exposes no update or delete, and none may ever be
// added. Corrections are REVERSAL inserts.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `id, wallet_id, amount_paise, entry_type, reference_type, reference_id, balance_after_paise, created_at`

// Insert writes a ledger entry within the caller's transaction.
func (r *LedgerRepo) Insert(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.WalletID, e.AmountPaise, e.EntryType,
		e.ReferenceType, e.ReferenceID, e.BalanceAfterPaise, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

const ledgerByReferenceQuery = `SELECT ` + ledgerColumns + ` FROM ledger_entries
	WHERE reference_type = $1 AND reference_id = $2`

// GetByReference fetches the entry linked to an originating record, used to
// make gateway webhook processing idempotent.
func (r *LedgerRepo) GetByReference(ctx context.Context, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error) {
	return scanEntryByReference(r.pool.QueryRow(ctx, ledgerByReferenceQuery, refType, refID))
}

// GetByReferenceInTx is the same lookup inside the caller's transaction. The
// append path runs it while holding the wallet row lock, so a concurrent
// delivery of the same originating record waits on the lock and then finds
// the winner's entry here.
func (r *LedgerRepo) GetByReferenceInTx(ctx context.Context, tx pgx.Tx, refType domain.ReferenceType, refID string) (*domain.LedgerEntry, error) {
	return scanEntryByReference(tx.QueryRow(ctx, ledgerByReferenceQuery, refType, refID))
}

func scanEntryByReference(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	err := row.Scan(
		&e.ID, &e.WalletID, &e.AmountPaise, &e.EntryType,
		&e.ReferenceType, &e.ReferenceID, &e.BalanceAfterPaise, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by reference: %w", err)
	}
	return e, nil
}

// ListByWallet returns entries for a wallet, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.WalletID, &e.AmountPaise, &e.EntryType,
			&e.ReferenceType, &e.ReferenceID, &e.BalanceAfterPaise, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}

// SumByWallet computes the authoritative balance: SUM(amount_paise) over
// every entry of the wallet.
func (r *LedgerRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_paise), 0) FROM ledger_entries WHERE wallet_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return sum, nil
}

// SumDebitsByTypeSince returns the absolute total debited for the given
// entry type since the cutoff.
func (r *LedgerRepo) SumDebitsByTypeSince(ctx context.Context, walletID uuid.UUID, entryType domain.EntryType, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(-amount_paise), 0) FROM ledger_entries
		WHERE wallet_id = $1 AND entry_type = $2 AND amount_paise < 0 AND created_at >= $3`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, walletID, entryType, since).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum debits: %w", err)
	}
	return sum, nil
}

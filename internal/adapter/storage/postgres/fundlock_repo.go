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

// FundLockRepo implements ports.FundLockRepository.
type FundLockRepo struct {
	pool Pool
}

// NewFundLockRepo creates a new FundLockRepo.
func NewFundLockRepo(pool Pool) *FundLockRepo {
	return &FundLockRepo{pool: pool}
}

const lockColumns = `id, wallet_id, amount_paise, reason, status, created_at, expires_at, released_at`

// Create inserts a fund lock within the caller's wallet-row-locked
// transaction.
func (r *FundLockRepo) Create(ctx context.Context, tx pgx.Tx, l *domain.FundLock) error {
	query := `INSERT INTO fund_locks (` + lockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		l.ID, l.WalletID, l.AmountPaise, l.Reason, l.Status,
		l.CreatedAt, l.ExpiresAt, l.ReleasedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fund lock: %w", err)
	}
	return nil
}

// GetByID fetches a fund lock.
func (r *FundLockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FundLock, error) {
	query := `SELECT ` + lockColumns + ` FROM fund_locks WHERE id = $1`

	l := &domain.FundLock{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.WalletID, &l.AmountPaise, &l.Reason, &l.Status,
		&l.CreatedAt, &l.ExpiresAt, &l.ReleasedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fund lock: %w", err)
	}
	return l, nil
}

// Transition conditionally moves an ACTIVE lock to a terminal status. The
// WHERE clause makes it idempotent: a second call affects zero rows and
// returns false.
func (r *FundLockRepo) Transition(ctx context.Context, tx pgx.Tx, lockID uuid.UUID, to domain.LockStatus, releasedAt time.Time) (bool, error) {
	query := `UPDATE fund_locks SET status = $1, released_at = $2
		WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, to, releasedAt, lockID, domain.LockStatusActive)
	if err != nil {
		return false, fmt.Errorf("transition fund lock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListExpired returns active locks whose TTL has passed, oldest first.
func (r *FundLockRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.FundLock, error) {
	query := `SELECT ` + lockColumns + ` FROM fund_locks
		WHERE status = $1 AND expires_at < $2 ORDER BY expires_at LIMIT $3`

	rows, err := r.pool.Query(ctx, query, domain.LockStatusActive, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired locks: %w", err)
	}
	defer rows.Close()

	var locks []domain.FundLock
	for rows.Next() {
		var l domain.FundLock
		if err := rows.Scan(&l.ID, &l.WalletID, &l.AmountPaise, &l.Reason, &l.Status,
			&l.CreatedAt, &l.ExpiresAt, &l.ReleasedAt); err != nil {
			return nil, fmt.Errorf("scan fund lock: %w", err)
		}
		locks = append(locks, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fund locks: %w", err)
	}
	return locks, nil
}

// SumActiveByWallet totals the active holds against a wallet.
func (r *FundLockRepo) SumActiveByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_paise), 0) FROM fund_locks
		WHERE wallet_id = $1 AND status = $2`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, walletID, domain.LockStatusActive).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum active locks: %w", err)
	}
	return sum, nil
}

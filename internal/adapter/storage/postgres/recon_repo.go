package postgres

import (
	"context"
	"fmt"

	"wallet-ledger-engine/internal/core/domain"
)

// ReconciliationRepo implements ports.ReconciliationRepository.
type ReconciliationRepo struct {
	pool Pool
}

// NewReconciliationRepo creates a new ReconciliationRepo.
func NewReconciliationRepo(pool Pool) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool}
}

// InsertReport persists discrepancy evidence.
func (r *ReconciliationRepo) InsertReport(ctx context.Context, rep *domain.DiscrepancyReport) error {
	query := `INSERT INTO reconciliation_reports
		(id, wallet_id, ledger_paise, projected_paise, delta_paise, check_type, run_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rep.ID, rep.WalletID, rep.LedgerPaise, rep.ProjectedPaise,
		rep.DeltaPaise, rep.CheckType, rep.RunID, rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reconciliation report: %w", err)
	}
	return nil
}

// ListMismatched re-derives every wallet balance in a single set-based
// query and returns only the rows that disagree with the projection. This
// is the independent derivation behind the wallet-ledger check: it shares
// no code with the per-wallet scan.
func (r *ReconciliationRepo) ListMismatched(ctx context.Context, limit int) ([]domain.DiscrepancyReport, error) {
	query := `SELECT w.id, COALESCE(l.ledger_sum, 0), w.balance_paise
		FROM wallets w
		LEFT JOIN (
			SELECT wallet_id, SUM(amount_paise) AS ledger_sum
			FROM ledger_entries GROUP BY wallet_id
		) l ON l.wallet_id = w.id
		WHERE w.balance_paise <> COALESCE(l.ledger_sum, 0)
		ORDER BY w.id LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list mismatched wallets: %w", err)
	}
	defer rows.Close()

	var reports []domain.DiscrepancyReport
	for rows.Next() {
		var rep domain.DiscrepancyReport
		if err := rows.Scan(&rep.WalletID, &rep.LedgerPaise, &rep.ProjectedPaise); err != nil {
			return nil, fmt.Errorf("scan mismatched wallet: %w", err)
		}
		rep.DeltaPaise = rep.ProjectedPaise - rep.LedgerPaise
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mismatched wallets: %w", err)
	}
	return reports, nil
}

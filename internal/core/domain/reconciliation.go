package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckType distinguishes the two independent reconciliation passes.
type CheckType string

const (
	CheckTypeBalance      CheckType = "BALANCE_RECONCILE"
	CheckTypeWalletLedger CheckType = "WALLET_LEDGER_RECONCILE"
)

// DiscrepancyReport records one detected mismatch between the cached wallet
// projection and the ledger-derived sum. Reports are evidence, not
// corrections: reconciliation never writes to wallets or the ledger.
type DiscrepancyReport struct {
	ID             uuid.UUID `json:"id"`
	WalletID       uuid.UUID `json:"wallet_id"`
	LedgerPaise    int64     `json:"ledger_paise"`    // SUM(ledger_entries)
	ProjectedPaise int64     `json:"projected_paise"` // wallets.balance_paise
	DeltaPaise     int64     `json:"delta_paise"`
	CheckType      CheckType `json:"check_type"`
	RunID          uuid.UUID `json:"run_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReconcileSummary aggregates a single reconciliation run.
type ReconcileSummary struct {
	RunID          uuid.UUID `json:"run_id"`
	CheckType      CheckType `json:"check_type"`
	WalletsScanned int       `json:"wallets_scanned"`
	Discrepancies  int       `json:"discrepancies"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

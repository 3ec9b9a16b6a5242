package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds the cached balance projection for a single user.
// BalancePaise and LockedBalancePaise are derived from the ledger; the
// ledger append path is the only writer. Authoritative truth is always
// SUM(ledger_entries.amount_paise).
type Wallet struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	BalancePaise       int64     `json:"balance_paise"`
	LockedBalancePaise int64     `json:"locked_balance_paise"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AvailablePaise returns the spendable balance: cached balance minus
// active fund locks.
func (w *Wallet) AvailablePaise() int64 {
	return w.BalancePaise - w.LockedBalancePaise
}

// Balance is the read-optimized view returned to callers. Display data
// only; never used as the authority for a debit decision outside a
// wallet-row-locked transaction.
type Balance struct {
	WalletID           uuid.UUID `json:"wallet_id"`
	BalancePaise       int64     `json:"balance_paise"`
	LockedBalancePaise int64     `json:"locked_balance_paise"`
	AvailablePaise     int64     `json:"available_paise"`
}

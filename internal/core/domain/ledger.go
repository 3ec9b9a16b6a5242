package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType classifies a balance-affecting event.
type EntryType string

const (
	EntryTypeDeposit         EntryType = "DEPOSIT"
	EntryTypeWithdrawal      EntryType = "WITHDRAWAL"
	EntryTypeBonusCredit     EntryType = "BONUS_CREDIT"
	EntryTypeRefund          EntryType = "REFUND"
	EntryTypeAdminAdjustment EntryType = "ADMIN_ADJUSTMENT"
	EntryTypeReversal        EntryType = "REVERSAL"
	EntryTypeLock            EntryType = "LOCK"
	EntryTypeUnlock          EntryType = "UNLOCK"
)

// AllowsOverdraft reports whether a debit of this type may take the cached
// balance negative. Only explicitly flagged admin and correction paths may;
// user-facing debits never do.
func (t EntryType) AllowsOverdraft() bool {
	return t == EntryTypeAdminAdjustment || t == EntryTypeReversal
}

// ReferenceType links a ledger entry back to its originating record.
type ReferenceType string

const (
	ReferenceTypePayment    ReferenceType = "PAYMENT"
	ReferenceTypeWithdrawal ReferenceType = "WITHDRAWAL_REQUEST"
	ReferenceTypeFundLock   ReferenceType = "FUND_LOCK"
	ReferenceTypeAdmin      ReferenceType = "ADMIN_ACTION"
	ReferenceTypeEntry      ReferenceType = "LEDGER_ENTRY"
)

// LedgerEntry is one immutable balance-affecting event. Entries are never
// updated or deleted; corrections are new REVERSAL entries.
type LedgerEntry struct {
	ID                uuid.UUID     `json:"id"`
	WalletID          uuid.UUID     `json:"wallet_id"`
	AmountPaise       int64         `json:"amount_paise"` // positive = credit, negative = debit
	EntryType         EntryType     `json:"entry_type"`
	ReferenceType     ReferenceType `json:"reference_type"`
	ReferenceID       string        `json:"reference_id"`
	BalanceAfterPaise int64         `json:"balance_after_paise"`
	CreatedAt         time.Time     `json:"created_at"`
}

// IsDebit reports whether the entry reduces the balance.
func (e *LedgerEntry) IsDebit() bool {
	return e.AmountPaise < 0
}

// Reversal builds the correcting entry for this one. The original stays
// untouched; the reversal carries the opposite amount and points back at it.
func (e *LedgerEntry) Reversal() *LedgerEntry {
	return &LedgerEntry{
		ID:            uuid.New(),
		WalletID:      e.WalletID,
		AmountPaise:   -e.AmountPaise,
		EntryType:     EntryTypeReversal,
		ReferenceType: ReferenceTypeEntry,
		ReferenceID:   e.ID.String(),
	}
}

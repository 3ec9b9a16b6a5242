package dto

import (
	"time"

	"wallet-ledger-engine/internal/core/domain"
)

// PaymentWebhookRequest is the gateway payment confirmation payload.
// Signature verification happens at the gateway integration layer; this
// body is authenticated but its amount is still untrusted.
type PaymentWebhookRequest struct {
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required,max=100,safe_id"`
	AmountPaise      int64  `json:"amount_paise" binding:"required,gt=0"`
	Currency         string `json:"currency" binding:"required,len=3"`
	SubscriptionID   string `json:"subscription_id" binding:"required,uuid"`
}

// WithdrawalRequest is the request body for placing a withdrawal hold.
type WithdrawalRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	AmountPaise int64  `json:"amount_paise" binding:"required,gt=0"`
}

// WithdrawalSettleRequest confirms an external payout against a held lock.
type WithdrawalSettleRequest struct {
	ReferenceID string `json:"reference_id" binding:"required,max=100,safe_id"`
}

// FundLockRequest is the request body for a manual fund lock.
type FundLockRequest struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	AmountPaise int64  `json:"amount_paise" binding:"required,gt=0"`
	Reason      string `json:"reason" binding:"required,max=200"`
	TTLSeconds  int64  `json:"ttl_seconds" binding:"required,gt=0"`
}

// OverrideRequest is the admin contract override payload.
type OverrideRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required,uuid"`
	Field          string `json:"field" binding:"required,max=64"`
	NewValue       string `json:"new_value" binding:"required,max=64"`
	Reason         string `json:"reason" binding:"required,max=500"`
}

// TermsUpdateRequest is a proposed frozen-terms mutation. Any change to a
// frozen field through this path is rejected and audited.
type TermsUpdateRequest struct {
	PlanID             string `json:"plan_id" binding:"required"`
	MonthlyAmountPaise int64  `json:"monthly_amount_paise" binding:"required,gt=0"`
	TotalCycles        int    `json:"total_cycles" binding:"required,gt=0"`
	StartDate          string `json:"start_date" binding:"required"`
}

// LedgerEntryResponse is the response body for a committed ledger entry.
type LedgerEntryResponse struct {
	ID                string `json:"id"`
	WalletID          string `json:"wallet_id"`
	AmountPaise       int64  `json:"amount_paise"`
	EntryType         string `json:"entry_type"`
	ReferenceType     string `json:"reference_type"`
	ReferenceID       string `json:"reference_id"`
	BalanceAfterPaise int64  `json:"balance_after_paise"`
	CreatedAt         string `json:"created_at"`
}

// ToLedgerEntryResponse maps a domain entry to its response body.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:                e.ID.String(),
		WalletID:          e.WalletID.String(),
		AmountPaise:       e.AmountPaise,
		EntryType:         string(e.EntryType),
		ReferenceType:     string(e.ReferenceType),
		ReferenceID:       e.ReferenceID,
		BalanceAfterPaise: e.BalanceAfterPaise,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}

// BalanceResponse is the response for a wallet balance query.
type BalanceResponse struct {
	WalletID           string `json:"wallet_id"`
	BalancePaise       int64  `json:"balance_paise"`
	LockedBalancePaise int64  `json:"locked_balance_paise"`
	AvailablePaise     int64  `json:"available_paise"`
}

// ToBalanceResponse maps a domain balance to its response body.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		WalletID:           b.WalletID.String(),
		BalancePaise:       b.BalancePaise,
		LockedBalancePaise: b.LockedBalancePaise,
		AvailablePaise:     b.AvailablePaise,
	}
}

// FundLockResponse is the response body for a fund lock.
type FundLockResponse struct {
	ID          string `json:"id"`
	WalletID    string `json:"wallet_id"`
	AmountPaise int64  `json:"amount_paise"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	ExpiresAt   string `json:"expires_at"`
}

// ToFundLockResponse maps a domain fund lock to its response body.
func ToFundLockResponse(l *domain.FundLock) FundLockResponse {
	return FundLockResponse{
		ID:          l.ID.String(),
		WalletID:    l.WalletID.String(),
		AmountPaise: l.AmountPaise,
		Reason:      l.Reason,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   l.ExpiresAt.Format(time.RFC3339),
	}
}

// OverrideResponse is the response body for an applied contract override.
type OverrideResponse struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`
	Field          string `json:"field"`
	OldValue       string `json:"old_value"`
	NewValue       string `json:"new_value"`
	ActorID        string `json:"actor_id"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ToOverrideResponse maps a domain override record to its response body.
func ToOverrideResponse(o *domain.ContractOverride) OverrideResponse {
	return OverrideResponse{
		ID:             o.ID.String(),
		SubscriptionID: o.SubscriptionID.String(),
		Field:          o.Field,
		OldValue:       o.OldValue,
		NewValue:       o.NewValue,
		ActorID:        o.ActorID.String(),
		Reason:         o.Reason,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
	}
}

// ComplianceSnapshotResponse is the response for a compliance resolution.
type ComplianceSnapshotResponse struct {
	UserID             string   `json:"user_id"`
	KYCState           string   `json:"kyc_state"`
	WalletState        string   `json:"wallet_state"`
	SubscriptionState  string   `json:"subscription_state"`
	BalancePaise       int64    `json:"balance_paise"`
	LockedBalancePaise int64    `json:"locked_balance_paise"`
	IsBlacklisted      bool     `json:"is_blacklisted"`
	IsAnonymized       bool     `json:"is_anonymized"`
	InGoodStanding     bool     `json:"in_good_standing"`
	UnmetReasons       []string `json:"unmet_reasons,omitempty"`
}

// ToComplianceSnapshotResponse maps a snapshot to its response body. The
// good-standing verdict and its reasons are computed here so callers never
// re-derive the gate themselves.
func ToComplianceSnapshotResponse(s domain.ComplianceSnapshot) ComplianceSnapshotResponse {
	resp := ComplianceSnapshotResponse{
		UserID:             s.UserID,
		KYCState:           string(s.KYCState),
		WalletState:        string(s.WalletState),
		SubscriptionState:  string(s.SubscriptionState),
		BalancePaise:       s.BalancePaise,
		LockedBalancePaise: s.LockedBalancePaise,
		IsBlacklisted:      s.IsBlacklisted,
		IsAnonymized:       s.IsAnonymized,
		InGoodStanding:     s.IsInGoodStanding(),
	}
	if !resp.InGoodStanding {
		resp.UnmetReasons = s.UnmetReasons()
	}
	return resp
}

package domain

import "strings"

// KYCState is the normalized verification state of a user's KYC profile.
type KYCState string

const (
	KYCStateUnverified KYCState = "UNVERIFIED"
	KYCStatePending    KYCState = "PENDING"
	KYCStateApproved   KYCState = "APPROVED"
	KYCStateRejected   KYCState = "REJECTED"
)

// ParseKYCState maps a raw status string onto a KYCState. Unknown or
// missing values default to UNVERIFIED, never an error: an unreadable KYC
// status must fail closed, not crash a gating check.
func ParseKYCState(raw string) KYCState {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING", "IN_REVIEW":
		return KYCStatePending
	case "APPROVED", "VERIFIED":
		return KYCStateApproved
	case "REJECTED", "FAILED":
		return KYCStateRejected
	default:
		return KYCStateUnverified
	}
}

// WalletState is binary wallet presence.
type WalletState string

const (
	WalletStateActive   WalletState = "ACTIVE"
	WalletStateInactive WalletState = "INACTIVE"
)

// SubscriptionState is the normalized subscription dimension of the
// snapshot.
type SubscriptionState string

const (
	SubscriptionStateNone      SubscriptionState = "NONE"
	SubscriptionStateActive    SubscriptionState = "ACTIVE"
	SubscriptionStatePaused    SubscriptionState = "PAUSED"
	SubscriptionStateCancelled SubscriptionState = "CANCELLED"
	SubscriptionStateCompleted SubscriptionState = "COMPLETED"
)

// ParseSubscriptionState maps a subscription (possibly absent) onto its
// snapshot state.
func ParseSubscriptionState(sub *Subscription) SubscriptionState {
	if sub == nil {
		return SubscriptionStateNone
	}
	switch sub.Status {
	case SubscriptionStatusActive:
		return SubscriptionStateActive
	case SubscriptionStatusPaused:
		return SubscriptionStatePaused
	case SubscriptionStatusCancelled:
		return SubscriptionStateCancelled
	case SubscriptionStatusCompleted:
		return SubscriptionStateCompleted
	default:
		return SubscriptionStateNone
	}
}

// ComplianceSnapshot is a point-in-time derivation of a user's eligibility
// state. It is a value object: computed fresh on every call, never
// persisted, never cached across requests. Staleness here has financial
// consequences.
type ComplianceSnapshot struct {
	UserID             string            `json:"user_id"`
	KYCState           KYCState          `json:"kyc_state"`
	WalletState        WalletState       `json:"wallet_state"`
	SubscriptionState  SubscriptionState `json:"subscription_state"`
	BalancePaise       int64             `json:"balance_paise"`
	LockedBalancePaise int64             `json:"locked_balance_paise"`
	IsBlacklisted      bool              `json:"is_blacklisted"`
	IsAnonymized       bool              `json:"is_anonymized"`
	UserStatus         string            `json:"user_status"`
}

// IsInGoodStanding is the single composite gate evaluated before any
// sensitive financial action.
func (s ComplianceSnapshot) IsInGoodStanding() bool {
	return !s.IsBlacklisted &&
		!s.IsAnonymized &&
		s.KYCState == KYCStateApproved &&
		s.WalletState == WalletStateActive
}

// UnmetReasons lists every failed good-standing condition, so the boundary
// can return actionable detail instead of a generic refusal.
func (s ComplianceSnapshot) UnmetReasons() []string {
	var reasons []string
	if s.IsBlacklisted {
		reasons = append(reasons, "user is blacklisted")
	}
	if s.IsAnonymized {
		reasons = append(reasons, "user account is anonymized")
	}
	if s.KYCState != KYCStateApproved {
		reasons = append(reasons, "kyc not approved (state: "+string(s.KYCState)+")")
	}
	if s.WalletState != WalletStateActive {
		reasons = append(reasons, "wallet not active")
	}
	return reasons
}

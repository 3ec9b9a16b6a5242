package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseKYCState(t *testing.T) {
	cases := map[string]KYCState{
		"APPROVED":  KYCStateApproved,
		"verified":  KYCStateApproved,
		"PENDING":   KYCStatePending,
		"in_review": KYCStatePending,
		"REJECTED":  KYCStateRejected,
		"failed":    KYCStateRejected,
		"":          KYCStateUnverified,
		"garbage":   KYCStateUnverified,
		"  APPROVED  ": KYCStateApproved,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseKYCState(raw), "raw=%q", raw)
	}
}

func TestComplianceSnapshot_IsInGoodStanding(t *testing.T) {
	good := ComplianceSnapshot{
		KYCState:    KYCStateApproved,
		WalletState: WalletStateActive,
	}
	assert.True(t, good.IsInGoodStanding())
	assert.Empty(t, good.UnmetReasons())

	blacklisted := good
	blacklisted.IsBlacklisted = true
	assert.False(t, blacklisted.IsInGoodStanding())
	assert.Len(t, blacklisted.UnmetReasons(), 1)

	bad := ComplianceSnapshot{
		KYCState:      KYCStatePending,
		WalletState:   WalletStateInactive,
		IsBlacklisted: true,
		IsAnonymized:  true,
	}
	assert.False(t, bad.IsInGoodStanding())
	assert.Len(t, bad.UnmetReasons(), 4)
}

func TestEntryType_AllowsOverdraft(t *testing.T) {
	assert.True(t, EntryTypeAdminAdjustment.AllowsOverdraft())
	assert.True(t, EntryTypeReversal.AllowsOverdraft())
	assert.False(t, EntryTypeWithdrawal.AllowsOverdraft())
	assert.False(t, EntryTypeDeposit.AllowsOverdraft())
}

func TestLedgerEntry_Reversal(t *testing.T) {
	orig := &LedgerEntry{
		ID:          uuid.New(),
		WalletID:    uuid.New(),
		AmountPaise: -50000,
		EntryType:   EntryTypeWithdrawal,
	}
	rev := orig.Reversal()
	assert.Equal(t, orig.WalletID, rev.WalletID)
	assert.Equal(t, int64(50000), rev.AmountPaise)
	assert.Equal(t, EntryTypeReversal, rev.EntryType)
	assert.Equal(t, ReferenceTypeEntry, rev.ReferenceType)
	assert.Equal(t, orig.ID.String(), rev.ReferenceID)
}

func TestFundLock_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	lock := &FundLock{
		Status:    LockStatusActive,
		ExpiresAt: now.Add(24 * time.Hour),
	}
	assert.False(t, lock.IsExpired(now))
	assert.True(t, lock.IsExpired(now.Add(25*time.Hour)))

	released := &FundLock{
		Status:    LockStatusReleased,
		ExpiresAt: now.Add(-time.Hour),
	}
	assert.False(t, released.IsExpired(now))
}

func TestFrozenTerms_Fingerprint(t *testing.T) {
	terms := FrozenTerms{
		PlanID:             uuid.New(),
		MonthlyAmountPaise: 500000,
		TotalCycles:        12,
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	fp1 := terms.Fingerprint()
	fp2 := terms.Fingerprint()
	assert.Equal(t, fp1, fp2, "fingerprint must be deterministic")

	tampered := terms
	tampered.MonthlyAmountPaise = 400000
	assert.NotEqual(t, fp1, tampered.Fingerprint())
}

func TestFrozenTerms_ChangedFields(t *testing.T) {
	base := FrozenTerms{
		PlanID:             uuid.New(),
		MonthlyAmountPaise: 500000,
		TotalCycles:        12,
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Empty(t, base.ChangedFields(base))

	edited := base
	edited.MonthlyAmountPaise = 450000
	edited.TotalCycles = 24
	changed := base.ChangedFields(edited)
	assert.ElementsMatch(t, []string{"monthly_amount_paise", "total_cycles"}, changed)
}

func TestWallet_AvailablePaise(t *testing.T) {
	w := &Wallet{BalancePaise: 100000, LockedBalancePaise: 30000}
	assert.Equal(t, int64(70000), w.AvailablePaise())
}

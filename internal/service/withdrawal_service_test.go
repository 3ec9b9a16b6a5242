package service

import (
	"context"
	"testing"
	"time"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/internal/core/ports/mocks"
	"wallet-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testDailyLimit = int64(1000000)

type withdrawalTestDeps struct {
	svc        *WithdrawalServiceImpl
	compliance *mocks.MockComplianceService
	lockSvc    *mocks.MockFundLockService
	ledgerSvc  *mocks.MockLedgerService
	walletRepo *mocks.MockWalletRepository
	ledgerRepo *mocks.MockLedgerRepository
	lockRepo   *mocks.MockFundLockRepository
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupWithdrawalService(t *testing.T) *withdrawalTestDeps {
	ctrl := gomock.NewController(t)
	d := &withdrawalTestDeps{
		compliance: mocks.NewMockComplianceService(ctrl),
		lockSvc:    mocks.NewMockFundLockService(ctrl),
		ledgerSvc:  mocks.NewMockLedgerService(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		lockRepo:   mocks.NewMockFundLockRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewWithdrawalService(
		d.compliance, d.lockSvc, d.ledgerSvc,
		d.walletRepo, d.ledgerRepo, d.lockRepo, d.transactor, zerolog.Nop(),
	)
	return d
}

func TestWithdrawalService_Request_Success(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	ttl := 30 * time.Minute

	d.compliance.EXPECT().AssertCan(ctx, "withdrawal", userID).Return(nil)
	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(&domain.Wallet{ID: walletID, UserID: userID}, nil)
	d.ledgerRepo.EXPECT().SumDebitsByTypeSince(ctx, walletID, domain.EntryTypeWithdrawal, gomock.Any()).Return(int64(200000), nil)
	d.lockSvc.EXPECT().Lock(ctx, walletID, int64(300000), withdrawalLockReason, ttl).Return(&domain.FundLock{
		ID:          uuid.New(),
		WalletID:    walletID,
		AmountPaise: 300000,
		Status:      domain.LockStatusActive,
	}, nil)

	lock, err := d.svc.Request(ctx, userID, 300000, testDailyLimit, ttl)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), lock.AmountPaise)
}

func TestWithdrawalService_Request_DailyLimitExceeded(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()

	d.compliance.EXPECT().AssertCan(ctx, "withdrawal", userID).Return(nil)
	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(&domain.Wallet{ID: walletID, UserID: userID}, nil)
	// 800000 already withdrawn today; another 300000 breaks the 1000000 cap
	d.ledgerRepo.EXPECT().SumDebitsByTypeSince(ctx, walletID, domain.EntryTypeWithdrawal, gomock.Any()).Return(int64(800000), nil)

	_, err := d.svc.Request(ctx, userID, 300000, testDailyLimit, time.Minute)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "DAILY_WITHDRAWAL_LIMIT", appErr.Code)
}

func TestWithdrawalService_Request_ComplianceRefusal(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	d.compliance.EXPECT().AssertCan(ctx, "withdrawal", userID).
		Return(apperror.ErrIneligibleAction("withdrawal", nil, []string{"kyc not approved (state: PENDING)"}))

	_, err := d.svc.Request(ctx, userID, 100000, testDailyLimit, time.Minute)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "INELIGIBLE_ACTION", appErr.Code)
}

func TestWithdrawalService_Request_NonPositiveAmount(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Request(context.Background(), uuid.New(), -5, testDailyLimit, time.Minute)
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
}

func TestWithdrawalService_Settle_Success(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	lockID := uuid.New()
	tx := &mockTx{}

	d.lockRepo.EXPECT().GetByID(ctx, lockID).Return(&domain.FundLock{
		ID:          lockID,
		WalletID:    walletID,
		AmountPaise: 300000,
		Status:      domain.LockStatusActive,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{
		ID:                 walletID,
		BalancePaise:       500000,
		LockedBalancePaise: 300000,
	}, nil)
	d.lockRepo.EXPECT().Transition(ctx, tx, lockID, domain.LockStatusReleased, gomock.Any()).Return(true, nil)
	d.walletRepo.EXPECT().UpdateBalances(ctx, tx, walletID, int64(500000), int64(0)).Return(nil)
	d.ledgerSvc.EXPECT().AppendInTx(ctx, tx, ports.AppendRequest{
		WalletID:      walletID,
		AmountPaise:   -300000,
		EntryType:     domain.EntryTypeWithdrawal,
		ReferenceType: domain.ReferenceTypeWithdrawal,
		ReferenceID:   "payout_001",
	}).Return(&domain.LedgerEntry{
		WalletID:          walletID,
		AmountPaise:       -300000,
		EntryType:         domain.EntryTypeWithdrawal,
		BalanceAfterPaise: 200000,
	}, nil)

	entry, err := d.svc.Settle(ctx, lockID, "payout_001")
	require.NoError(t, err)
	assert.Equal(t, int64(-300000), entry.AmountPaise)
	assert.Equal(t, int64(200000), entry.BalanceAfterPaise)
}

func TestWithdrawalService_Settle_LockNotActive(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	lockID := uuid.New()
	tx := &mockTx{}

	d.lockRepo.EXPECT().GetByID(ctx, lockID).Return(&domain.FundLock{
		ID:          lockID,
		WalletID:    walletID,
		AmountPaise: 300000,
		Status:      domain.LockStatusExpired,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByIDForUpdate(ctx, tx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.lockRepo.EXPECT().Transition(ctx, tx, lockID, domain.LockStatusReleased, gomock.Any()).Return(false, nil)

	_, err := d.svc.Settle(ctx, lockID, "payout_002")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", appErr.Code)
}

func TestWithdrawalService_Settle_LockNotFound(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	lockID := uuid.New()

	d.lockRepo.EXPECT().GetByID(ctx, lockID).Return(nil, nil)

	_, err := d.svc.Settle(ctx, lockID, "payout_003")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LOCK_NOT_FOUND", appErr.Code)
}

func TestWithdrawalService_Cancel(t *testing.T) {
	d := setupWithdrawalService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	lockID := uuid.New()

	d.lockSvc.EXPECT().Release(ctx, lockID).Return(nil)

	assert.NoError(t, d.svc.Cancel(ctx, lockID))
}

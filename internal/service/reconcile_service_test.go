package service

import (
	"context"
	"testing"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reconTestDeps struct {
	svc        *ReconciliationServiceImpl
	walletRepo *mocks.MockWalletRepository
	ledgerRepo *mocks.MockLedgerRepository
	reconRepo  *mocks.MockReconciliationRepository
	notifier   *mocks.MockNotifier
	ctrl       *gomock.Controller
}

func setupReconService(t *testing.T, batchSize int) *reconTestDeps {
	ctrl := gomock.NewController(t)
	d := &reconTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		reconRepo:  mocks.NewMockReconciliationRepository(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewReconciliationService(
		d.walletRepo, d.ledgerRepo, d.reconRepo, d.notifier,
		newTestMetrics(), batchSize, zerolog.Nop(),
	)
	return d
}

func TestReconcileBalances_CleanRun(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	w1 := domain.Wallet{ID: uuid.New(), BalancePaise: 50000}
	w2 := domain.Wallet{ID: uuid.New(), BalancePaise: 0}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 100).Return([]domain.Wallet{w1, w2}, nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w1.ID).Return(int64(50000), nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w2.ID).Return(int64(0), nil)

	summary, err := d.svc.ReconcileBalances(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.WalletsScanned)
	assert.Equal(t, 0, summary.Discrepancies)
	assert.Equal(t, domain.CheckTypeBalance, summary.CheckType)
}

func TestReconcileBalances_DetectsDiscrepancyAndAlerts(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	w := domain.Wallet{ID: uuid.New(), BalancePaise: 75000}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 100).Return([]domain.Wallet{w}, nil)
	// Ledger says 50000, projection says 75000, on both derivations
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w.ID).Return(int64(50000), nil).Times(2)
	d.walletRepo.EXPECT().GetByID(ctx, w.ID).Return(&w, nil)
	d.reconRepo.EXPECT().InsertReport(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rep *domain.DiscrepancyReport) error {
			assert.Equal(t, w.ID, rep.WalletID)
			assert.Equal(t, int64(50000), rep.LedgerPaise)
			assert.Equal(t, int64(75000), rep.ProjectedPaise)
			assert.Equal(t, int64(25000), rep.DeltaPaise)
			assert.Equal(t, domain.CheckTypeBalance, rep.CheckType)
			return nil
		})
	d.notifier.EXPECT().Alert(ctx, gomock.Any(), gomock.Any()).Return(nil)

	summary, err := d.svc.ReconcileBalances(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Discrepancies)
}

func TestReconcileBalances_NoAlertWhenDisabled(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	w := domain.Wallet{ID: uuid.New(), BalancePaise: 75000}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 100).Return([]domain.Wallet{w}, nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w.ID).Return(int64(50000), nil).Times(2)
	d.walletRepo.EXPECT().GetByID(ctx, w.ID).Return(&w, nil)
	d.reconRepo.EXPECT().InsertReport(ctx, gomock.Any()).Return(nil)
	// No Alert expectation: notifier must not be called

	summary, err := d.svc.ReconcileBalances(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Discrepancies)
}

func TestReconcileBalances_SkipsTransientInFlightDelta(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	// Scanned projection is stale: a 50000 deposit committed between the
	// batch read and the ledger sum.
	w := domain.Wallet{ID: uuid.New(), BalancePaise: 100000}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 100).Return([]domain.Wallet{w}, nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w.ID).Return(int64(150000), nil).Times(2)
	// The wallet row already carries the deposit on re-read
	d.walletRepo.EXPECT().GetByID(ctx, w.ID).
		Return(&domain.Wallet{ID: w.ID, BalancePaise: 150000}, nil)
	// No InsertReport, no Alert: the delta cleared on the second derivation

	summary, err := d.svc.ReconcileBalances(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.WalletsScanned)
	assert.Equal(t, 0, summary.Discrepancies)
}

func TestReconcileBalances_SkipsShiftedDelta(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	w := domain.Wallet{ID: uuid.New(), BalancePaise: 100000}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 100).Return([]domain.Wallet{w}, nil)
	// First derivation sees a 50000 delta, the second a 60000 delta: writes
	// are still landing, so nothing is recorded this run.
	first := d.ledgerRepo.EXPECT().SumByWallet(ctx, w.ID).Return(int64(150000), nil)
	d.walletRepo.EXPECT().GetByID(ctx, w.ID).Return(&w, nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w.ID).Return(int64(160000), nil).After(first)

	summary, err := d.svc.ReconcileBalances(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Discrepancies)
}

func TestReconcileBalances_PaginatesBatches(t *testing.T) {
	d := setupReconService(t, 2)
	defer d.ctrl.Finish()

	ctx := context.Background()
	w1 := domain.Wallet{ID: uuid.New(), BalancePaise: 100}
	w2 := domain.Wallet{ID: uuid.New(), BalancePaise: 200}
	w3 := domain.Wallet{ID: uuid.New(), BalancePaise: 300}

	d.walletRepo.EXPECT().ScanBatch(ctx, uuid.Nil, 2).Return([]domain.Wallet{w1, w2}, nil)
	d.walletRepo.EXPECT().ScanBatch(ctx, w2.ID, 2).Return([]domain.Wallet{w3}, nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w1.ID).Return(int64(100), nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w2.ID).Return(int64(200), nil)
	d.ledgerRepo.EXPECT().SumByWallet(ctx, w3.ID).Return(int64(300), nil)

	summary, err := d.svc.ReconcileBalances(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.WalletsScanned)
	assert.Equal(t, 0, summary.Discrepancies)
}

func TestWalletReconcile_ReportsMismatches(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.reconRepo.EXPECT().ListMismatched(ctx, 100).Return([]domain.DiscrepancyReport{
		{WalletID: walletID, LedgerPaise: 10000, ProjectedPaise: 12000, DeltaPaise: 2000},
	}, nil)
	d.reconRepo.EXPECT().InsertReport(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rep *domain.DiscrepancyReport) error {
			assert.Equal(t, domain.CheckTypeWalletLedger, rep.CheckType)
			assert.Equal(t, int64(2000), rep.DeltaPaise)
			return nil
		})
	d.notifier.EXPECT().Alert(ctx, gomock.Any(), gomock.Any()).Return(nil)

	summary, err := d.svc.WalletReconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Discrepancies)
	assert.Equal(t, domain.CheckTypeWalletLedger, summary.CheckType)
}

func TestWalletReconcile_Clean(t *testing.T) {
	d := setupReconService(t, 100)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.reconRepo.EXPECT().ListMismatched(ctx, 100).Return(nil, nil)

	summary, err := d.svc.WalletReconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Discrepancies)
}

package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const withdrawalLockReason = "withdrawal_hold"

// WithdrawalServiceImpl implements ports.WithdrawalService: the debit flow
// that reserves funds before money moves, so the balance cannot change out
// from under an in-flight withdrawal.
type WithdrawalServiceImpl struct {
	compliance ports.ComplianceService
	lockSvc    ports.FundLockService
	ledgerSvc  ports.LedgerService
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	lockRepo   ports.FundLockRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	compliance ports.ComplianceService,
	lockSvc ports.FundLockService,
	ledgerSvc ports.LedgerService,
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	lockRepo ports.FundLockRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		compliance: compliance,
		lockSvc:    lockSvc,
		ledgerSvc:  ledgerSvc,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		lockRepo:   lockRepo,
		transactor: transactor,
		log:        log,
	}
}

// Request gates a withdrawal on compliance and the daily limit, then locks
// the funds. The limit is an explicit parameter so the policy lives with
// the caller, not in a global.
func (s *WithdrawalServiceImpl) Request(ctx context.Context, userID uuid.UUID, amountPaise int64, maxDailyPaise int64, ttl time.Duration) (*domain.FundLock, error) {
	if amountPaise <= 0 {
		return nil, apperror.Validation("withdrawal amount must be positive")
	}

	if err := s.compliance.AssertCan(ctx, "withdrawal", userID); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(userID.String())
	}

	// Daily limit counts settled withdrawals since UTC midnight. Funds held
	// by pending requests are already excluded from availability by their
	// locks.
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	withdrawnToday, err := s.ledgerRepo.SumDebitsByTypeSince(ctx, wallet.ID, domain.EntryTypeWithdrawal, midnight)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum withdrawals: %w", err))
	}
	if withdrawnToday+amountPaise > maxDailyPaise {
		return nil, apperror.ErrDailyWithdrawalLimit(maxDailyPaise, withdrawnToday+amountPaise)
	}

	lock, err := s.lockSvc.Lock(ctx, wallet.ID, amountPaise, withdrawalLockReason, ttl)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("lock_id", lock.ID.String()).
		Int64("amount_paise", amountPaise).
		Msg("withdrawal requested, funds locked")

	return lock, nil
}

// Settle converts a held withdrawal into a ledger debit. The lock release
// and the withdrawal entry commit in one transaction; a crash between them
// cannot leave money both unlocked and unwithdrawn.
func (s *WithdrawalServiceImpl) Settle(ctx context.Context, lockID uuid.UUID, referenceID string) (*domain.LedgerEntry, error) {
	lock, err := s.lockRepo.GetByID(ctx, lockID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get fund lock: %w", err))
	}
	if lock == nil {
		return nil, apperror.ErrLockNotFound(lockID.String())
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, lock.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(lock.WalletID.String())
	}

	ok, err := s.lockRepo.Transition(ctx, dbTx, lockID, domain.LockStatusReleased, time.Now().UTC())
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("transition fund lock: %w", err))
	}
	if !ok {
		return nil, apperror.Validation("fund lock is not active")
	}

	// Return the hold to availability before the debit so the append sees
	// the funds it is about to take.
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, wallet.BalancePaise, wallet.LockedBalancePaise-lock.AmountPaise); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update locked balance: %w", err))
	}

	entry, err := s.ledgerSvc.AppendInTx(ctx, dbTx, ports.AppendRequest{
		WalletID:      lock.WalletID,
		AmountPaise:   -lock.AmountPaise,
		EntryType:     domain.EntryTypeWithdrawal,
		ReferenceType: domain.ReferenceTypeWithdrawal,
		ReferenceID:   referenceID,
	})
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("lock_id", lockID.String()).
		Str("wallet_id", lock.WalletID.String()).
		Int64("amount_paise", lock.AmountPaise).
		Str("reference_id", referenceID).
		Msg("withdrawal settled")

	return entry, nil
}

// Cancel abandons a pending withdrawal and releases its hold.
func (s *WithdrawalServiceImpl) Cancel(ctx context.Context, lockID uuid.UUID) error {
	return s.lockSvc.Release(ctx, lockID)
}

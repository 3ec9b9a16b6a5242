package service

import (
	"context"
	"fmt"
	"time"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const expirySweepBatch = 100

// FundLockServiceImpl implements ports.FundLockService.
type FundLockServiceImpl struct {
	walletRepo ports.WalletRepository
	lockRepo   ports.FundLockRepository
	transactor ports.DBTransactor
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewFundLockService creates a new FundLockServiceImpl.
func NewFundLockService(
	walletRepo ports.WalletRepository,
	lockRepo ports.FundLockRepository,
	transactor ports.DBTransactor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *FundLockServiceImpl {
	return &FundLockServiceImpl{
		walletRepo: walletRepo,
		lockRepo:   lockRepo,
		transactor: transactor,
		metrics:    m,
		log:        log,
	}
}

// Lock places a hold on available balance. The availability check and the
// lock insert share one wallet-row-locked transaction, so two concurrent
// locks cannot both pass the check against the same funds.
func (s *FundLockServiceImpl) Lock(ctx context.Context, walletID uuid.UUID, amountPaise int64, reason string, ttl time.Duration) (*domain.FundLock, error) {
	if amountPaise <= 0 {
		return nil, apperror.Validation("lock amount must be positive")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(walletID.String())
	}

	if wallet.AvailablePaise() < amountPaise {
		return nil, apperror.ErrLockExceedsAvailable(wallet.AvailablePaise(), amountPaise)
	}

	now := time.Now().UTC()
	lock := &domain.FundLock{
		ID:          uuid.New(),
		WalletID:    walletID,
		AmountPaise: amountPaise,
		Reason:      reason,
		Status:      domain.LockStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	if err := s.lockRepo.Create(ctx, dbTx, lock); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create fund lock: %w", err))
	}
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, walletID, wallet.BalancePaise, wallet.LockedBalancePaise+amountPaise); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update locked balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("lock_id", lock.ID.String()).
		Str("wallet_id", walletID.String()).
		Int64("amount_paise", amountPaise).
		Str("reason", reason).
		Time("expires_at", lock.ExpiresAt).
		Msg("fund lock created")

	return lock, nil
}

// Release explicitly releases an active lock. Releasing a lock that has
// already been released or expired is a no-op, so retries are safe.
func (s *FundLockServiceImpl) Release(ctx context.Context, lockID uuid.UUID) error {
	lock, err := s.lockRepo.GetByID(ctx, lockID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get fund lock: %w", err))
	}
	if lock == nil {
		return apperror.ErrLockNotFound(lockID.String())
	}

	released, err := s.release(ctx, lock, domain.LockStatusReleased)
	if err != nil {
		return err
	}
	if released {
		s.log.Info().
			Str("lock_id", lockID.String()).
			Str("wallet_id", lock.WalletID.String()).
			Msg("fund lock released")
	}
	return nil
}

// ReleaseExpired sweeps active locks past their TTL to EXPIRED and returns
// the locked funds to availability. Each lock transitions in its own
// transaction with a conditional update, so a concurrently running sweep
// or explicit release cannot double-release.
func (s *FundLockServiceImpl) ReleaseExpired(ctx context.Context) (int, error) {
	expired, err := s.lockRepo.ListExpired(ctx, time.Now().UTC(), expirySweepBatch)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list expired locks: %w", err))
	}

	released := 0
	for i := range expired {
		lock := expired[i]
		ok, err := s.release(ctx, &lock, domain.LockStatusExpired)
		if err != nil {
			s.log.Error().Err(err).
				Str("lock_id", lock.ID.String()).
				Msg("expiry sweep failed for lock, continuing")
			continue
		}
		if ok {
			released++
			s.metrics.FundLocksReleased.Inc()
			s.log.Info().
				Str("lock_id", lock.ID.String()).
				Str("wallet_id", lock.WalletID.String()).
				Int64("amount_paise", lock.AmountPaise).
				Msg("expired fund lock released")
		}
	}
	return released, nil
}

// release transitions a lock out of ACTIVE and returns its amount to
// availability. Returns false when the lock was already terminal.
func (s *FundLockServiceImpl) release(ctx context.Context, lock *domain.FundLock, to domain.LockStatus) (bool, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, lock.WalletID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return false, apperror.ErrWalletNotFound(lock.WalletID.String())
	}

	ok, err := s.lockRepo.Transition(ctx, dbTx, lock.ID, to, time.Now().UTC())
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("transition fund lock: %w", err))
	}
	if !ok {
		// Already released or expired; nothing to undo.
		return false, nil
	}

	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet.ID, wallet.BalancePaise, wallet.LockedBalancePaise-lock.AmountPaise); err != nil {
		return false, apperror.InternalError(fmt.Errorf("update locked balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return false, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return true, nil
}

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
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. It is the only write
// path into ledger_entries and the wallet projection.
type LedgerServiceImpl struct {
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	transactor ports.DBTransactor
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		transactor: transactor,
		metrics:    m,
		log:        log,
	}
}

// Append runs the whole append atomically with pessimistic locking: the
// wallet row is locked before the balance check so concurrent debits
// serialize instead of double-spending.
func (s *LedgerServiceImpl) Append(ctx context.Context, req ports.AppendRequest) (*domain.LedgerEntry, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	entry, err := s.appendLocked(ctx, dbTx, req)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return entry, nil
}

// AppendInTx performs the append inside a caller-owned transaction so
// composite operations stay atomic. The caller commits or rolls back.
func (s *LedgerServiceImpl) AppendInTx(ctx context.Context, tx pgx.Tx, req ports.AppendRequest) (*domain.LedgerEntry, error) {
	return s.appendLocked(ctx, tx, req)
}

func (s *LedgerServiceImpl) appendLocked(ctx context.Context, tx pgx.Tx, req ports.AppendRequest) (*domain.LedgerEntry, error) {
	if req.AmountPaise == 0 {
		return nil, apperror.ErrZeroAmount()
	}

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, tx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(req.WalletID.String())
	}

	// Reference dedupe under the wallet row lock. Two concurrent deliveries
	// of the same originating record serialize on the lock; the loser finds
	// the winner's entry here and returns it instead of appending a second.
	if req.ReferenceID != "" {
		existing, err := s.ledgerRepo.GetByReferenceInTx(ctx, tx, req.ReferenceType, req.ReferenceID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("reference dedupe check: %w", err))
		}
		if existing != nil {
			s.log.Info().
				Str("wallet_id", wallet.ID.String()).
				Str("reference_id", req.ReferenceID).
				Msg("duplicate reference, returning original entry")
			return existing, nil
		}
	}

	// Business rule: a debit must fit in the available balance unless the
	// entry type is explicitly flagged for overdraft (admin corrections).
	if req.AmountPaise < 0 && !req.EntryType.AllowsOverdraft() {
		if wallet.AvailablePaise()+req.AmountPaise < 0 {
			return nil, apperror.ErrInsufficientBalance(wallet.AvailablePaise(), -req.AmountPaise)
		}
	}

	newBalance := wallet.BalancePaise + req.AmountPaise

	entry := &domain.LedgerEntry{
		ID:                uuid.New(),
		WalletID:          req.WalletID,
		AmountPaise:       req.AmountPaise,
		EntryType:         req.EntryType,
		ReferenceType:     req.ReferenceType,
		ReferenceID:       req.ReferenceID,
		BalanceAfterPaise: newBalance,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.ledgerRepo.Insert(ctx, tx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("insert ledger entry: %w", err))
	}

	if err := s.walletRepo.UpdateBalances(ctx, tx, wallet.ID, newBalance, wallet.LockedBalancePaise); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet projection: %w", err))
	}

	s.metrics.LedgerEntriesTotal.WithLabelValues(string(req.EntryType)).Inc()
	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("entry_type", string(req.EntryType)).
		Int64("amount_paise", req.AmountPaise).
		Int64("balance_after_paise", newBalance).
		Msg("ledger entry appended")

	return entry, nil
}

// GetBalance reads the cached projection. Display data only; debit
// decisions always go through the locked append path.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, walletID uuid.UUID) (*domain.Balance, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(walletID.String())
	}
	return &domain.Balance{
		WalletID:           wallet.ID,
		BalancePaise:       wallet.BalancePaise,
		LockedBalancePaise: wallet.LockedBalancePaise,
		AvailablePaise:     wallet.AvailablePaise(),
	}, nil
}

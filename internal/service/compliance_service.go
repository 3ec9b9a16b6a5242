package service

import (
	"context"
	"fmt"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ComplianceServiceImpl implements ports.ComplianceService. Snapshots are
// derived fresh on every call; nothing here caches across requests.
type ComplianceServiceImpl struct {
	userRepo   ports.UserRepository
	walletRepo ports.WalletRepository
	subRepo    ports.SubscriptionRepository
	log        zerolog.Logger
}

// NewComplianceService creates a new ComplianceServiceImpl.
func NewComplianceService(
	userRepo ports.UserRepository,
	walletRepo ports.WalletRepository,
	subRepo ports.SubscriptionRepository,
	log zerolog.Logger,
) *ComplianceServiceImpl {
	return &ComplianceServiceImpl{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		subRepo:    subRepo,
		log:        log,
	}
}

// Resolve builds the point-in-time compliance snapshot for a user. Missing
// KYC normalizes to UNVERIFIED and a missing wallet to INACTIVE; absence
// always fails closed rather than erroring.
func (s *ComplianceServiceImpl) Resolve(ctx context.Context, userID uuid.UUID) (domain.ComplianceSnapshot, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.ComplianceSnapshot{}, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return domain.ComplianceSnapshot{}, apperror.ErrUserNotFound(userID.String())
	}

	snapshot := domain.ComplianceSnapshot{
		UserID:        userID.String(),
		KYCState:      domain.KYCStateUnverified,
		WalletState:   domain.WalletStateInactive,
		IsBlacklisted: user.IsBlacklisted,
		IsAnonymized:  user.IsAnonymized,
		UserStatus:    user.Status,
	}

	kyc, err := s.userRepo.GetKYCProfile(ctx, userID)
	if err != nil {
		return domain.ComplianceSnapshot{}, apperror.InternalError(fmt.Errorf("get kyc profile: %w", err))
	}
	if kyc != nil {
		snapshot.KYCState = domain.ParseKYCState(kyc.RawStatus)
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.ComplianceSnapshot{}, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet != nil {
		snapshot.WalletState = domain.WalletStateActive
		snapshot.BalancePaise = wallet.BalancePaise
		snapshot.LockedBalancePaise = wallet.LockedBalancePaise
	}

	sub, err := s.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.ComplianceSnapshot{}, apperror.InternalError(fmt.Errorf("get subscription: %w", err))
	}
	snapshot.SubscriptionState = domain.ParseSubscriptionState(sub)

	return snapshot, nil
}

// AssertCan gates a sensitive action on good standing. The returned error
// carries the snapshot and every unmet reason so callers can surface
// actionable detail.
func (s *ComplianceServiceImpl) AssertCan(ctx context.Context, action string, userID uuid.UUID) error {
	snapshot, err := s.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	if !snapshot.IsInGoodStanding() {
		reasons := snapshot.UnmetReasons()
		s.log.Warn().
			Str("user_id", userID.String()).
			Str("action", action).
			Strs("unmet_reasons", reasons).
			Msg("action refused: user not in good standing")
		return apperror.ErrIneligibleAction(action, snapshot, reasons)
	}
	return nil
}

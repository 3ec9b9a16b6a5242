package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository. Read-only: the platform owns
// user and KYC writes; the compliance resolver only consumes them.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// GetByID fetches a user read model.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, status, is_blacklisted, is_anonymized, created_at
		FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Status, &u.IsBlacklisted, &u.IsAnonymized, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetKYCProfile fetches a user's KYC read model, nil when absent.
func (r *UserRepo) GetKYCProfile(ctx context.Context, userID uuid.UUID) (*domain.KYCProfile, error) {
	query := `SELECT user_id, raw_status, updated_at FROM kyc_profiles WHERE user_id = $1`

	p := &domain.KYCProfile{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.RawStatus, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kyc profile: %w", err)
	}
	return p, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepo implements ports.SubscriptionRepository.
type SubscriptionRepo struct {
	pool Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, user_id, plan_id, monthly_amount_paise, total_cycles, start_date, status, terms_fingerprint, created_at, updated_at`

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	s := &domain.Subscription{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Terms.PlanID, &s.Terms.MonthlyAmountPaise,
		&s.Terms.TotalCycles, &s.Terms.StartDate, &s.Status,
		&s.TermsFingerprint, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// GetByID fetches a subscription with its frozen terms.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	s, err := scanSubscription(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get subscription by id: %w", err)
	}
	return s, nil
}

// GetByUserID fetches a user's subscription.
func (r *SubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`

	s, err := scanSubscription(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("get subscription by user id: %w", err)
	}
	return s, nil
}

// UpdateTerms writes frozen terms and their new fingerprint. The sanctioned
// mutation path: only the contract guard's override workflow calls it.
func (r *SubscriptionRepo) UpdateTerms(ctx context.Context, tx pgx.Tx, subID uuid.UUID, terms domain.FrozenTerms, fingerprint string) error {
	query := `UPDATE subscriptions
		SET plan_id = $1, monthly_amount_paise = $2, total_cycles = $3, start_date = $4,
			terms_fingerprint = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := tx.Exec(ctx, query,
		terms.PlanID, terms.MonthlyAmountPaise, terms.TotalCycles, terms.StartDate,
		fingerprint, subID,
	)
	if err != nil {
		return fmt.Errorf("update subscription terms: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found: %s", subID)
	}
	return nil
}

// InsertOverride records an override audit row.
func (r *SubscriptionRepo) InsertOverride(ctx context.Context, tx pgx.Tx, o *domain.ContractOverride) error {
	query := `INSERT INTO contract_overrides
		(id, subscription_id, field, old_value, new_value, actor_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		o.ID, o.SubscriptionID, o.Field, o.OldValue, o.NewValue,
		o.ActorID, o.Reason, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contract override: %w", err)
	}
	return nil
}

// UpdateOverrideStatus advances an override record's lifecycle.
func (r *SubscriptionRepo) UpdateOverrideStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.OverrideStatus) error {
	query := `UPDATE contract_overrides SET status = $1 WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update override status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contract override not found: %s", id)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
)

type auditRepo struct {
	pool Pool
}

// NewAuditRepository creates the PostgreSQL-backed contract audit channel.
// The contract_audit_events table is append-only; this repo exposes no
// read, update, or delete.
func NewAuditRepository(pool Pool) ports.AuditRepository {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Append(ctx context.Context, ev *domain.ContractAuditEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contract_audit_events (id, kind, subscription_id, actor_id, ip_address, url, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.ID, ev.Kind, ev.SubscriptionID, ev.ActorID,
		ev.IPAddress, ev.URL, ev.Detail, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append contract audit event: %w", err)
	}
	return nil
}

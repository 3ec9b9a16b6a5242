package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditTrailImpl implements ports.AuditTrail. Events go to the dedicated
// contract_audit_events table, not to general application logs; a
// structured log line is emitted alongside for operators, but the table is
// the record.
type AuditTrailImpl struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditTrail creates a new AuditTrailImpl.
func NewAuditTrail(repo ports.AuditRepository, log zerolog.Logger) *AuditTrailImpl {
	return &AuditTrailImpl{repo: repo, log: log}
}

// Record writes one audit event synchronously. Callers must not respond to
// the client before this returns: the trail has to survive even when the
// response path fails.
func (a *AuditTrailImpl) Record(ctx context.Context, kind domain.ContractAuditKind, subID *uuid.UUID, meta ports.AuditMeta, detail any) error {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal audit detail: %w", err))
	}

	ev := &domain.ContractAuditEvent{
		ID:             uuid.New(),
		Kind:           kind,
		SubscriptionID: subID,
		ActorID:        meta.ActorID,
		IPAddress:      meta.IPAddress,
		URL:            meta.URL,
		Detail:         string(detailJSON),
		CreatedAt:      time.Now().UTC(),
	}

	if err := a.repo.Append(ctx, ev); err != nil {
		return apperror.InternalError(fmt.Errorf("append audit event: %w", err))
	}

	logEv := a.log.Warn()
	if kind == domain.AuditKindOverrideApplied {
		logEv = a.log.Info()
	}
	logEv.
		Str("audit_event_id", ev.ID.String()).
		Str("kind", string(kind)).
		Str("ip_address", meta.IPAddress).
		Str("url", meta.URL).
		RawJSON("detail", detailJSON).
		Msg("contract audit event recorded")

	return nil
}

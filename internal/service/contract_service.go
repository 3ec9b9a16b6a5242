package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const paymentEventTTL = 24 * time.Hour

// ContractGuardImpl implements ports.ContractGuard. It sits between the
// payment gateway and the ledger: no deposit is written until the captured
// amount matches the contracted amount, and no frozen term changes outside
// the audited override workflow.
type ContractGuardImpl struct {
	subRepo    ports.SubscriptionRepository
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	ledgerSvc  ports.LedgerService
	eventCache ports.PaymentEventCache
	audit      ports.AuditTrail
	transactor ports.DBTransactor
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewContractGuard creates a new ContractGuardImpl.
func NewContractGuard(
	subRepo ports.SubscriptionRepository,
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	ledgerSvc ports.LedgerService,
	eventCache ports.PaymentEventCache,
	audit ports.AuditTrail,
	transactor ports.DBTransactor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *ContractGuardImpl {
	return &ContractGuardImpl{
		subRepo:    subRepo,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		ledgerSvc:  ledgerSvc,
		eventCache: eventCache,
		audit:      audit,
		transactor: transactor,
		metrics:    m,
		log:        log,
	}
}

// ConfirmPayment verifies a gateway payment event against the frozen
// contract and, on match, writes the deposit ledger entry. Redeliveries of
// the same gateway payment id return the original entry.
func (g *ContractGuardImpl) ConfirmPayment(ctx context.Context, event domain.GatewayPaymentEvent, meta ports.AuditMeta) (*domain.LedgerEntry, error) {
	// Layer 1: Redis dedupe check
	cached, err := g.eventCache.Get(ctx, event.GatewayPaymentID)
	if err != nil {
		g.log.Warn().Err(err).Str("payment_id", event.GatewayPaymentID).Msg("redis dedupe check failed, falling through to ledger")
	}
	if cached != nil {
		return g.unmarshalCachedEntry(cached)
	}

	// Layer 2: dedupe against the ledger. The append path re-checks the
	// reference under the wallet row lock, so concurrent deliveries that
	// both pass this read still produce a single entry.
	existing, err := g.ledgerRepo.GetByReference(ctx, domain.ReferenceTypePayment, event.GatewayPaymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger dedupe check: %w", err))
	}
	if existing != nil {
		g.cacheEntry(ctx, event.GatewayPaymentID, existing)
		return existing, nil
	}

	sub, err := g.subRepo.GetByID(ctx, event.SubscriptionRef)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound(event.SubscriptionRef.String())
	}

	if err := g.checkIntegrity(ctx, sub, meta); err != nil {
		return nil, err
	}

	// Applied overrides land on the terms themselves, so the frozen monthly
	// amount is already the authoritative expectation.
	expected := sub.Terms.MonthlyAmountPaise

	if event.AmountPaise != expected {
		g.metrics.ContractViolations.WithLabelValues(string(domain.AuditKindPaymentAmountMismatch)).Inc()
		detail := map[string]any{
			"gateway_payment_id": event.GatewayPaymentID,
			"expected_paise":     expected,
			"webhook_paise":      event.AmountPaise,
			"currency":           event.Currency,
		}
		if auditErr := g.audit.Record(ctx, domain.AuditKindPaymentAmountMismatch, &sub.ID, meta, detail); auditErr != nil {
			return nil, auditErr
		}
		return nil, apperror.ErrPaymentAmountMismatch(sub.ID.String(), expected, event.AmountPaise)
	}

	wallet, err := g.walletRepo.GetByUserID(ctx, sub.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(sub.UserID.String())
	}

	entry, err := g.ledgerSvc.Append(ctx, ports.AppendRequest{
		WalletID:      wallet.ID,
		AmountPaise:   event.AmountPaise,
		EntryType:     domain.EntryTypeDeposit,
		ReferenceType: domain.ReferenceTypePayment,
		ReferenceID:   event.GatewayPaymentID,
	})
	if err != nil {
		return nil, err
	}

	g.cacheEntry(ctx, event.GatewayPaymentID, entry)
	return entry, nil
}

// ApplyOverride validates and applies an admin change to frozen terms.
// The override record, the terms update and the status advance share one
// transaction; the applied event lands on the audit channel before the
// result is returned.
func (g *ContractGuardImpl) ApplyOverride(ctx context.Context, req ports.OverrideRequest, meta ports.AuditMeta) (*domain.ContractOverride, error) {
	if meta.ActorID == nil {
		return nil, apperror.Validation("override requires an authenticated actor")
	}

	sub, err := g.subRepo.GetByID(ctx, req.SubscriptionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound(req.SubscriptionID.String())
	}

	newTerms, oldValue, issues := applyOverrideField(sub.Terms, req.Field, req.NewValue)
	if req.Reason == "" {
		issues = append(issues, "reason is required")
	}
	if len(issues) > 0 {
		g.metrics.ContractViolations.WithLabelValues(string(domain.AuditKindOverrideSchema)).Inc()
		detail := map[string]any{"field": req.Field, "new_value": req.NewValue, "issues": issues}
		if auditErr := g.audit.Record(ctx, domain.AuditKindOverrideSchema, &sub.ID, meta, detail); auditErr != nil {
			return nil, auditErr
		}
		return nil, apperror.ErrOverrideSchemaViolation(issues)
	}

	if err := g.checkIntegrity(ctx, sub, meta); err != nil {
		return nil, err
	}

	override := &domain.ContractOverride{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		Field:          req.Field,
		OldValue:       oldValue,
		NewValue:       req.NewValue,
		ActorID:        *meta.ActorID,
		Reason:         req.Reason,
		Status:         domain.OverrideStatusApproved,
		CreatedAt:      time.Now().UTC(),
	}

	dbTx, err := g.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := g.subRepo.InsertOverride(ctx, dbTx, override); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("insert override: %w", err))
	}
	if err := g.subRepo.UpdateTerms(ctx, dbTx, sub.ID, newTerms, newTerms.Fingerprint()); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update terms: %w", err))
	}
	if err := g.subRepo.UpdateOverrideStatus(ctx, dbTx, override.ID, domain.OverrideStatusApplied); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("advance override status: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	override.Status = domain.OverrideStatusApplied

	detail := map[string]any{
		"override_id": override.ID.String(),
		"field":       req.Field,
		"old_value":   oldValue,
		"new_value":   req.NewValue,
		"reason":      req.Reason,
	}
	if err := g.audit.Record(ctx, domain.AuditKindOverrideApplied, &sub.ID, meta, detail); err != nil {
		return nil, err
	}

	g.log.Info().
		Str("subscription_id", sub.ID.String()).
		Str("field", req.Field).
		Str("override_id", override.ID.String()).
		Msg("contract override applied")

	return override, nil
}

// GuardTermsUpdate rejects frozen-field mutations arriving outside the
// override workflow. Callers invoke it with the proposed terms before any
// subscription update; a violation is audited and refused.
func (g *ContractGuardImpl) GuardTermsUpdate(ctx context.Context, subID uuid.UUID, proposed domain.FrozenTerms, meta ports.AuditMeta) error {
	sub, err := g.subRepo.GetByID(ctx, subID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrSubscriptionNotFound(subID.String())
	}

	violated := sub.Terms.ChangedFields(proposed)
	if len(violated) == 0 {
		return nil
	}

	g.metrics.ContractViolations.WithLabelValues(string(domain.AuditKindSnapshotImmutability)).Inc()
	detail := map[string]any{"violated_fields": violated}
	if auditErr := g.audit.Record(ctx, domain.AuditKindSnapshotImmutability, &sub.ID, meta, detail); auditErr != nil {
		return auditErr
	}
	return apperror.ErrSnapshotImmutabilityViolation(sub.ID.String(), violated)
}

// VerifyIntegrity recomputes the stored fingerprint and reports tampering.
func (g *ContractGuardImpl) VerifyIntegrity(ctx context.Context, subID uuid.UUID) error {
	sub, err := g.subRepo.GetByID(ctx, subID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get subscription: %w", err))
	}
	if sub == nil {
		return apperror.ErrSubscriptionNotFound(subID.String())
	}
	return g.checkIntegrity(ctx, sub, ports.AuditMeta{})
}

// checkIntegrity compares the recomputed terms fingerprint against the
// stored one. A mismatch means the frozen fields were edited around the
// override workflow; the incident is audited and the operation refused.
func (g *ContractGuardImpl) checkIntegrity(ctx context.Context, sub *domain.Subscription, meta ports.AuditMeta) error {
	computed := sub.Terms.Fingerprint()
	if computed == sub.TermsFingerprint {
		return nil
	}

	g.metrics.ContractViolations.WithLabelValues(string(domain.AuditKindContractIntegrity)).Inc()
	detail := map[string]any{
		"stored_fingerprint":   sub.TermsFingerprint,
		"computed_fingerprint": computed,
	}
	if auditErr := g.audit.Record(ctx, domain.AuditKindContractIntegrity, &sub.ID, meta, detail); auditErr != nil {
		return auditErr
	}
	return apperror.ErrContractIntegrity(sub.ID.String(),
		fmt.Errorf("terms fingerprint mismatch: stored %s, computed %s", sub.TermsFingerprint, computed))
}

func (g *ContractGuardImpl) cacheEntry(ctx context.Context, paymentID string, entry *domain.LedgerEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		g.log.Warn().Err(err).Msg("marshal entry for dedupe cache")
		return
	}
	if err := g.eventCache.Set(ctx, paymentID, data, paymentEventTTL); err != nil {
		g.log.Warn().Err(err).Str("payment_id", paymentID).Msg("dedupe cache write failed")
	}
}

func (g *ContractGuardImpl) unmarshalCachedEntry(data []byte) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached entry: %w", err))
	}
	return &entry, nil
}

// applyOverrideField validates the override target and value against the
// schema and returns the updated terms plus the old value. Issues are
// collected, not short-circuited, so the client sees everything at once.
func applyOverrideField(terms domain.FrozenTerms, field, newValue string) (domain.FrozenTerms, string, []string) {
	var issues []string
	if !domain.OverridableFields[field] {
		issues = append(issues, fmt.Sprintf("field %q is not overridable", field))
		return terms, "", issues
	}

	switch field {
	case "monthly_amount_paise":
		old := strconv.FormatInt(terms.MonthlyAmountPaise, 10)
		amount, err := strconv.ParseInt(newValue, 10, 64)
		if err != nil || amount <= 0 {
			issues = append(issues, "monthly_amount_paise must be a positive integer")
			return terms, old, issues
		}
		terms.MonthlyAmountPaise = amount
		return terms, old, nil
	case "total_cycles":
		old := strconv.Itoa(terms.TotalCycles)
		cycles, err := strconv.Atoi(newValue)
		if err != nil || cycles <= 0 {
			issues = append(issues, "total_cycles must be a positive integer")
			return terms, old, issues
		}
		terms.TotalCycles = cycles
		return terms, old, nil
	}
	return terms, "", issues
}

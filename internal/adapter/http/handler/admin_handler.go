package handler

import (
	"time"

	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles the JWT-gated contract administration endpoints.
type AdminHandler struct {
	guard ports.ContractGuard
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(guard ports.ContractGuard) *AdminHandler {
	return &AdminHandler{guard: guard}
}

// ApplyOverride handles POST /api/v1/admin/overrides.
func (h *AdminHandler) ApplyOverride(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	subID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid subscription_id"))
		return
	}

	dto.TrimStrings(&req.Field, &req.NewValue, &req.Reason)

	override, err := h.guard.ApplyOverride(c.Request.Context(), ports.OverrideRequest{
		SubscriptionID: subID,
		Field:          req.Field,
		NewValue:       req.NewValue,
		Reason:         req.Reason,
	}, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOverrideResponse(override))
}

// UpdateTerms handles PUT /api/v1/admin/subscriptions/:id/terms. Any change
// to a frozen field through this path is refused and lands on the audit
// channel; the only sanctioned edit path is the override workflow.
func (h *AdminHandler) UpdateTerms(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid subscription id"))
		return
	}

	var req dto.TermsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid plan_id"))
		return
	}
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		response.Error(c, apperror.Validation("invalid start_date, expected RFC3339"))
		return
	}

	proposed := domain.FrozenTerms{
		PlanID:             planID,
		MonthlyAmountPaise: req.MonthlyAmountPaise,
		TotalCycles:        req.TotalCycles,
		StartDate:          startDate,
	}

	if err := h.guard.GuardTermsUpdate(c.Request.Context(), subID, proposed, auditMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"subscription_id": subID.String(), "frozen_fields_changed": false})
}

// VerifyIntegrity handles POST /api/v1/admin/subscriptions/:id/verify.
func (h *AdminHandler) VerifyIntegrity(c *gin.Context) {
	subID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid subscription id"))
		return
	}

	if err := h.guard.VerifyIntegrity(c.Request.Context(), subID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"subscription_id": subID.String(), "integrity": "ok"})
}

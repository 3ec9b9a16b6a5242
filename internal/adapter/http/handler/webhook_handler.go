package handler

import (
	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/adapter/http/middleware"
	"wallet-ledger-engine/internal/core/domain"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebhookHandler handles verified gateway payment events.
type WebhookHandler struct {
	guard ports.ContractGuard
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(guard ports.ContractGuard) *WebhookHandler {
	return &WebhookHandler{guard: guard}
}

// auditMeta extracts request provenance for the contract audit channel.
func auditMeta(c *gin.Context) ports.AuditMeta {
	meta := ports.AuditMeta{
		IPAddress: c.ClientIP(),
		URL:       c.Request.URL.Path,
	}
	if v, ok := c.Get(middleware.CtxAdminID); ok {
		if id, ok := v.(uuid.UUID); ok {
			meta.ActorID = &id
		}
	}
	return meta
}

// ConfirmPayment handles POST /api/v1/webhooks/gateway/payment.
// Redeliveries of the same gateway payment id return the original entry.
func (h *WebhookHandler) ConfirmPayment(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	subID, err := uuid.Parse(req.SubscriptionID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid subscription_id"))
		return
	}

	event := domain.GatewayPaymentEvent{
		GatewayPaymentID: req.GatewayPaymentID,
		AmountPaise:      req.AmountPaise,
		Currency:         req.Currency,
		SubscriptionRef:  subID,
	}

	entry, err := h.guard.ConfirmPayment(c.Request.Context(), event, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLedgerEntryResponse(entry))
}

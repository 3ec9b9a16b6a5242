package handler

import (
	"wallet-ledger-engine/config"
	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles the withdrawal hold lifecycle.
type WithdrawalHandler struct {
	withdrawalSvc ports.WithdrawalService
	limits        config.LimitsConfig
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalSvc ports.WithdrawalService, limits config.LimitsConfig) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalSvc: withdrawalSvc,
		limits:        limits,
	}
}

// Request handles POST /api/v1/withdrawals. Funds are held under a lock,
// not debited; the ledger entry is written at settlement.
func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user_id"))
		return
	}

	lock, err := h.withdrawalSvc.Request(
		c.Request.Context(),
		userID,
		req.AmountPaise,
		h.limits.MaxDailyWithdrawalPaise,
		h.limits.WithdrawalLockTTL,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToFundLockResponse(lock))
}

// Settle handles POST /api/v1/withdrawals/:lock_id/settle. Called once the
// external payout is confirmed.
func (h *WithdrawalHandler) Settle(c *gin.Context) {
	lockID, err := uuid.Parse(c.Param("lock_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid lock id"))
		return
	}

	var req dto.WithdrawalSettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.withdrawalSvc.Settle(c.Request.Context(), lockID, req.ReferenceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToLedgerEntryResponse(entry))
}

// Cancel handles POST /api/v1/withdrawals/:lock_id/cancel. Releases the
// hold without writing a ledger entry.
func (h *WithdrawalHandler) Cancel(c *gin.Context) {
	lockID, err := uuid.Parse(c.Param("lock_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid lock id"))
		return
	}

	if err := h.withdrawalSvc.Cancel(c.Request.Context(), lockID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"lock_id": lockID.String(), "cancelled": true})
}

package handler

import (
	"time"

	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet balance and fund lock endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
	lockSvc   ports.FundLockService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService, lockSvc ports.FundLockService) *WalletHandler {
	return &WalletHandler{
		ledgerSvc: ledgerSvc,
		lockSvc:   lockSvc,
	}
}

// GetBalance handles GET /api/v1/wallets/:id/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	balance, err := h.ledgerSvc.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToBalanceResponse(balance))
}

// CreateLock handles POST /api/v1/locks.
func (h *WalletHandler) CreateLock(c *gin.Context) {
	var req dto.FundLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet_id"))
		return
	}

	dto.TrimStrings(&req.Reason)
	ttl := time.Duration(req.TTLSeconds) * time.Second

	lock, err := h.lockSvc.Lock(c.Request.Context(), walletID, req.AmountPaise, req.Reason, ttl)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToFundLockResponse(lock))
}

// ReleaseLock handles POST /api/v1/locks/:id/release. Releasing an already
// terminal lock is a no-op and still returns 200.
func (h *WalletHandler) ReleaseLock(c *gin.Context) {
	lockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid lock id"))
		return
	}

	if err := h.lockSvc.Release(c.Request.Context(), lockID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"lock_id": lockID.String(), "released": true})
}

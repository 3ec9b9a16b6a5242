package handler

import (
	"wallet-ledger-engine/internal/adapter/http/dto"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/apperror"
	"wallet-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ComplianceHandler handles on-demand compliance snapshot resolution.
type ComplianceHandler struct {
	complianceSvc ports.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceSvc ports.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceSvc: complianceSvc}
}

// GetSnapshot handles GET /api/v1/users/:id/compliance. The snapshot is
// derived fresh on every call; no caching header is set on purpose.
func (h *ComplianceHandler) GetSnapshot(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid user id"))
		return
	}

	snapshot, err := h.complianceSvc.Resolve(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToComplianceSnapshotResponse(snapshot))
}

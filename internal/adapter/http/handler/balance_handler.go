package handler

import (
	"balance-ledger/internal/adapter/http/dto"
	"balance-ledger/internal/adapter/http/middleware"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/apperror"
	"balance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// BalanceHandler serves balance reads and top-ups.
type BalanceHandler struct {
	ledgerSvc ports.LedgerService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(ledgerSvc ports.LedgerService) *BalanceHandler {
	return &BalanceHandler{ledgerSvc: ledgerSvc}
}

// GetBalance handles GET /api/v1/balance.
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, err := h.ledgerSvc.GetBalance(c.Request.Context(), identityID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Balance: balance})
}

// TopUp handles POST /api/v1/topup.
func (h *BalanceHandler) TopUp(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	balance, err := h.ledgerSvc.TopUp(c.Request.Context(), identityID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Balance: balance})
}

package handler

import (
	"time"

	"balance-ledger/internal/adapter/http/dto"
	"balance-ledger/internal/adapter/http/middleware"
	"balance-ledger/internal/core/domain"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/apperror"
	"balance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves payments and ledger history.
type TransactionHandler struct {
	ledgerSvc  ports.LedgerService
	historySvc ports.HistoryService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerSvc ports.LedgerService, historySvc ports.HistoryService) *TransactionHandler {
	return &TransactionHandler{ledgerSvc: ledgerSvc, historySvc: historySvc}
}

// Pay handles POST /api/v1/transaction.
func (h *TransactionHandler) Pay(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.ledgerSvc.Pay(c.Request.Context(), identityID, dto.NormalizeServiceCode(req.ServiceCode))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactionResponse{
		InvoiceNumber:   result.InvoiceNumber,
		ServiceCode:     result.ServiceCode,
		ServiceName:     result.ServiceName,
		TransactionType: string(result.Kind),
		TotalAmount:     result.Amount,
		CreatedOn:       formatTime(result.CreatedOn),
	})
}

// History handles GET /api/v1/transaction/history?offset=&limit=.
func (h *TransactionHandler) History(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation("offset and limit must be integers"))
		return
	}
	offset, limit := 0, ports.DefaultHistoryLimit
	if q.Offset != nil {
		offset = *q.Offset
	}
	if q.Limit != nil {
		limit = *q.Limit
	}

	entries, err := h.historySvc.ListHistory(c.Request.Context(), identityID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	records := make([]dto.HistoryRecord, 0, len(entries))
	for i := range entries {
		records = append(records, toHistoryRecord(&entries[i]))
	}

	response.OK(c, dto.HistoryResponse{
		Offset:  offset,
		Limit:   ports.ClampHistoryLimit(limit),
		Records: records,
	})
}

// Summary handles GET /api/v1/transaction/summary.
func (h *TransactionHandler) Summary(c *gin.Context) {
	identityID, ok := middleware.IdentityID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	sum, err := h.historySvc.Summary(c.Request.Context(), identityID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SummaryResponse{
		Entries:      sum.Entries,
		TotalTopup:   sum.TotalTopup,
		TotalPayment: sum.TotalPayment,
		Net:          sum.Net,
	})
}

func toHistoryRecord(e *domain.LedgerEntry) dto.HistoryRecord {
	return dto.HistoryRecord{
		InvoiceNumber:   e.InvoiceNumber,
		ServiceCode:     e.ServiceCode,
		TransactionType: string(e.Kind),
		Description:     e.Description,
		TotalAmount:     e.Amount,
		CreatedOn:       formatTime(e.CreatedOn),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

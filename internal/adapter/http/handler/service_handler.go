package handler

import (
	"balance-ledger/internal/adapter/http/dto"
	"balance-ledger/internal/core/ports"
	"balance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ServiceHandler lists the payable service catalog.
type ServiceHandler struct {
	catalogSvc ports.CatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(catalogSvc ports.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogSvc: catalogSvc}
}

// List handles GET /api/v1/services.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, dto.ServiceResponse{
			ServiceCode:   s.Code,
			ServiceName:   s.Name,
			ServiceTariff: s.Tariff,
		})
	}
	response.OK(c, items)
}

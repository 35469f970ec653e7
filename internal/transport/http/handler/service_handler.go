package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"siembra-valores-api/internal/service"
	"siembra-valores-api/internal/transport/http/response"
)

type ServiceHandler struct {
	svc *service.CatalogService
}

func NewServiceHandler(svc *service.CatalogService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// GET /services — the read-only care catalog.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

package legal

import (
	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/latest-legal-content", h.latest)
}

func (h *Handler) latest(c *gin.Context) {
	response.OK(c, h.svc.Latest(c.Request.Context()))
}

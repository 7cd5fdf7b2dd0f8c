package article

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/middleware"
	"github.com/legalcurrent/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/articles", h.list)
	rg.POST("/articles", h.create)
	rg.GET("/paid-articles", authMW, h.listPaid)
}

func (h *Handler) list(c *gin.Context) {
	articles, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, h.logger, err, msgListFailed)
		return
	}
	response.OK(c, articles)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgArticleBody)
		return
	}

	a, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errInvalidDate) {
			response.BadRequest(c, errInvalidDate.Error())
			return
		}
		response.InternalError(c, h.logger, err, msgCreateFailed)
		return
	}
	response.Created(c, a)
}

// listPaid serves Premium articles to callers whose token says they subscribe.
func (h *Handler) listPaid(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil || !claims.SubscriptionStatus {
		response.Forbidden(c, msgPaidDenied)
		return
	}

	articles, err := h.svc.ListPremium(c.Request.Context())
	if err != nil {
		response.InternalError(c, h.logger, err, msgPaidFailed)
		return
	}
	response.OK(c, articles)
}

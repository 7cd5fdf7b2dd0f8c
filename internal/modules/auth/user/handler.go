package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/middleware"
	"github.com/legalcurrent/core/internal/pkg/password"
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
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
	rg.PUT("/users/:email/subscribe", authMW, h.updateSubscription)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgCredentialsBody)
		return
	}

	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errEmailInUse):
			response.BadRequest(c, msgEmailInUse)
		case errors.Is(err, password.ErrTooLong):
			response.BadRequest(c, msgPasswordTooLong)
		default:
			response.InternalError(c, h.logger, err, msgRegisterFailed)
		}
		return
	}
	response.Created(c, registerResponse{Email: u.Email, Message: msgRegistered})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgCredentialsBody)
		return
	}

	token, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.BadRequest(c, msgInvalidLogin)
			return
		}
		response.InternalError(c, h.logger, err, msgLoginFailed)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: token})
}

// updateSubscription is open to any authenticated caller; the acting
// identity is logged.
func (h *Handler) updateSubscription(c *gin.Context) {
	var dto SubscriptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, msgSubscriptionBody)
		return
	}

	email := c.Param("email")
	actor := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		actor = claims.Email
	}

	if err := h.svc.UpdateSubscription(c.Request.Context(), email, *dto.SubscriptionStatus); err != nil {
		if errors.Is(err, errUserNotFound) {
			response.NotFound(c, msgUserNotFound)
			return
		}
		response.InternalError(c, h.logger, err, msgSubscribeFailed)
		return
	}

	h.logger.Info("subscription updated",
		zap.String("email", email),
		zap.Bool("subscription_status", *dto.SubscriptionStatus),
		zap.String("actor", actor),
	)
	response.Message(c, msgSubscribed)
}

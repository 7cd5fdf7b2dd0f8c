package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is returned by endpoints that only acknowledge an action.
type MessageBody struct {
	Message string `json:"message"`
}

// OK sends a 200 response. Slices are written as bare JSON arrays.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 {"message": ...} response.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// InternalError logs err and sends a 500 with a fixed message. err never
// reaches the client.
func InternalError(c *gin.Context, logger *zap.Logger, err error, message string) {
	if logger != nil {
		logger.Error(message,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
	abort(c, http.StatusInternalServerError, message)
}

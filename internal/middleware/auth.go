package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/jwt"
	"github.com/legalcurrent/core/internal/pkg/response"
)

const ContextKeyClaims = "auth_claims"

const (
	msgTokenRequired = "Authentication token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// TokenVerifier decodes a bearer token into claims.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// Auth rejects requests without a valid bearer token: 401 when none is sent,
// 403 when it fails verification.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := NormalizeToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c, msgTokenRequired)
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			response.Forbidden(c, msgTokenInvalid)
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// CurrentClaims returns the claims stored by Auth, or nil.
func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// NormalizeToken returns the credentials of a "Bearer <token>" header. Any
// other shape, a bare scheme included, yields "".
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if len(token) <= 7 || !strings.EqualFold(token[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(token[7:])
}

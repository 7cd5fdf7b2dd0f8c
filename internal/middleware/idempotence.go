package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyTTL       = 60 * time.Second
	idempotencyPrefix    = "idempotency:"

	idempotencyPending = "0"
	idempotencyDone    = "1"
)

// IdempotencyStore is the shared key space used to detect replays.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	SetKeepTTL(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}

// Idempotence rejects a replayed write carrying the same Idempotency-Key
// within a minute of a successful (or in-flight) attempt. Requests without
// the header pass through untouched; store failures fail open.
func Idempotence(store IdempotencyStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderIdempotencyKey)
		if raw == "" || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := idempotencyKey(c, raw)
		ctx := c.Request.Context()

		acquired, err := store.SetNX(ctx, key, idempotencyPending, idempotencyTTL)
		if err != nil {
			if log != nil {
				log.Warn("idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}
		if !acquired {
			msg := "A request with this Idempotency-Key already succeeded"
			if val, _ := store.Get(ctx, key); val == idempotencyPending {
				msg = "A request with this Idempotency-Key is still being processed"
			}
			c.AbortWithStatusJSON(http.StatusConflict, response.ErrorBody{Error: msg})
			return
		}

		c.Next()

		// the request context may already be cancelled by now
		bg := context.WithoutCancel(ctx)
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			_ = store.SetKeepTTL(bg, key, idempotencyDone)
		} else {
			_ = store.Del(bg, key)
		}
	}
}

// idempotencyKey scopes the client key to the route and caller.
func idempotencyKey(c *gin.Context, raw string) string {
	scope := c.Request.Method + "|" + c.Request.URL.Path + "|" + NormalizeToken(c.GetHeader("Authorization")) + "|" + raw
	h := sha256.Sum256([]byte(scope))
	return idempotencyPrefix + hex.EncodeToString(h[:])
}

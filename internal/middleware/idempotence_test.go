package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIdempotentRouter(t *testing.T, status *int, calls *int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := redis.Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	r := gin.New()
	r.POST("/api/articles", Idempotence(rc, zap.NewNop()), func(c *gin.Context) {
		*calls++
		c.Status(*status)
	})
	return r, mr
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotenceRejectsReplay(t *testing.T) {
	status, calls := http.StatusCreated, 0
	r, mr := newIdempotentRouter(t, &status, &calls)

	assert.Equal(t, http.StatusCreated, post(r, "abc").Code)
	w := post(r, "abc")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"A request with this Idempotency-Key already succeeded"}`, w.Body.String())
	assert.Equal(t, 1, calls)

	assert.Equal(t, http.StatusCreated, post(r, "other").Code)
	assert.Equal(t, 2, calls)

	mr.FastForward(idempotencyTTL + 1)
	assert.Equal(t, http.StatusCreated, post(r, "abc").Code)
	assert.Equal(t, 3, calls)
}

func TestIdempotenceReleasesFailedAttempts(t *testing.T) {
	status, calls := http.StatusInternalServerError, 0
	r, _ := newIdempotentRouter(t, &status, &calls)

	assert.Equal(t, http.StatusInternalServerError, post(r, "abc").Code)
	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, post(r, "abc").Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotenceWithoutHeader(t *testing.T) {
	status, calls := http.StatusCreated, 0
	r, mr := newIdempotentRouter(t, &status, &calls)

	post(r, "")
	post(r, "")
	assert.Equal(t, 2, calls)
	assert.Empty(t, mr.Keys())
}

func TestIdempotenceFailsOpen(t *testing.T) {
	status, calls := http.StatusCreated, 0
	r, mr := newIdempotentRouter(t, &status, &calls)
	mr.Close()

	assert.Equal(t, http.StatusCreated, post(r, "abc").Code)
	assert.Equal(t, http.StatusCreated, post(r, "abc").Code)
	assert.Equal(t, 2, calls)
}

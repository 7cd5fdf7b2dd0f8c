package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/database"
	"github.com/legalcurrent/core/internal/middleware"
	"github.com/legalcurrent/core/internal/modules/auth/user"
	"github.com/legalcurrent/core/internal/modules/content/article"
	"github.com/legalcurrent/core/internal/modules/content/legal"
	"github.com/legalcurrent/core/internal/modules/system/health"
	"github.com/legalcurrent/core/internal/pkg/response"
)

const welcomeMessage = "Welcome to LegalCurrent Backend!"

func (a *App) registerRoutes(d *deps) {
	r := a.router
	authMW := middleware.Auth(d.tokens)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, response.ErrorBody{Error: "Method Not Allowed"})
	})

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, welcomeMessage)
	})
	if a.metrics != nil {
		r.GET(a.cfg.Metrics.Path, gin.WrapH(a.metrics.Handler()))
	}

	api := r.Group("/api")
	if a.redis != nil {
		api.Use(middleware.Idempotence(a.redis, a.logger))
	}

	userSvc := user.NewService(d.store, d.hasher, d.tokens, a.metrics)
	user.NewHandler(userSvc, a.logger).RegisterRoutes(api, authMW)

	article.NewHandler(article.NewService(d.store), a.logger).RegisterRoutes(api, authMW)

	if d.legal != nil {
		legal.NewHandler(d.legal).RegisterRoutes(api)
	}

	var cachePing health.Pinger
	if a.redis != nil {
		cachePing = a.redis.Ping
	}
	health.RegisterRoutes(api, func(ctx context.Context) error {
		return database.Ping(ctx, a.db)
	}, cachePing, a.sched)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/legalcurrent/core/internal/config"
	"github.com/legalcurrent/core/internal/database"
	"github.com/legalcurrent/core/internal/middleware"
	"github.com/legalcurrent/core/internal/modules/content/legal"
	"github.com/legalcurrent/core/internal/pkg/cron"
	"github.com/legalcurrent/core/internal/pkg/jwt"
	"github.com/legalcurrent/core/internal/pkg/metrics"
	"github.com/legalcurrent/core/internal/pkg/password"
	pkgredis "github.com/legalcurrent/core/internal/pkg/redis"
	"github.com/legalcurrent/core/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
	sched   *cron.Scheduler
	cancel  context.CancelFunc
}

// New wires config → DB → Redis → services → routes. Nothing is started
// until Start is called.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.URL != "" {
		rc, err = pkgredis.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, legal content will not be cached", zap.Error(err))
			rc = nil
		}
	}

	tokens, err := jwt.New(cfg.Secret())
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	if cfg.JWTSecret == "" {
		logger.Warn("jwt_secret not set, using the development secret")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enable {
		m = metrics.New()
	}

	app := &App{
		cfg:     cfg,
		db:      db,
		redis:   rc,
		logger:  logger,
		metrics: m,
		sched:   cron.New(logger),
	}

	deps := &deps{
		store:  store.New(db),
		hasher: password.NewHasher(password.DefaultCost),
		tokens: tokens,
	}
	if cfg.Legal.Enable {
		if err := app.buildLegal(deps); err != nil {
			return nil, fmt.Errorf("legal sources: %w", err)
		}
	}

	app.router = app.newRouter()
	app.registerRoutes(deps)
	app.registerCronJobs(deps)
	return app, nil
}

// deps are the services handed to route and job registration.
type deps struct {
	store    *store.Store
	hasher   *password.Hasher
	tokens   *jwt.Service
	legal    *legal.Service
	importer *legal.Importer
}

func (a *App) buildLegal(d *deps) error {
	client := &http.Client{Timeout: a.cfg.Legal.FetchTimeout}

	fetchers := make([]legal.Fetcher, 0, len(a.cfg.Legal.Sources))
	feeds := make([]legal.Fetcher, 0, len(a.cfg.Legal.Sources))
	for _, src := range a.cfg.Legal.Sources {
		f, err := legal.NewFetcher(src, client)
		if err != nil {
			return err
		}
		fetchers = append(fetchers, f)
		if src.Kind == config.SourceRSS {
			feeds = append(feeds, f)
		}
	}

	var cache legal.Cache
	if a.redis != nil {
		cache = a.redis
	}
	d.legal = legal.NewService(fetchers, cache, a.cfg.Legal.CacheTTL, a.logger, a.metrics)
	d.importer = legal.NewImporter(feeds, d.store, a.cfg.Legal.ImportCategory, a.logger, a.metrics)
	return nil
}

func (a *App) newRouter() *gin.Engine {
	if a.cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	if a.metrics != nil {
		router.Use(middleware.Metrics(a.metrics, a.cfg.Metrics.Path))
	}
	router.Use(cors.New(a.corsConfig()))
	return router
}

func (a *App) corsConfig() cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
	}
	if len(a.cfg.AllowedOrigins) > 0 && !a.cfg.IsDev() {
		corsConfig.AllowOriginFunc = newOriginMatcher(a.cfg.AllowedOrigins).Allow
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	return corsConfig
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Start launches background jobs.
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.sched.Start(ctx)
}

// Shutdown stops background jobs and releases connections.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
		a.sched.Wait()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("close database", zap.Error(err))
	}
}

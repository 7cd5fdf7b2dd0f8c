package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/legalcurrent/core/internal/app"
	"github.com/legalcurrent/core/internal/config"
	"github.com/legalcurrent/core/internal/pkg/nativelog"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := nativelog.NewZapLogger(nativelog.Options{
		Env:   cfg.Env,
		Level: cfg.Log.Level,
		Dir:   cfg.LogDir(),
	})
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("log pipeline unavailable, fallback to zap production logger", zap.Error(err))
	}
	defer logger.Sync()

	application, err := app.New(logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}
	application.Start()

	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	application.Shutdown()
	logger.Info("server exited")
}

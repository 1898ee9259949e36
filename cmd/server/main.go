package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/todo-service/config"
	"github.com/ErlanBelekov/todo-service/internal/health"
	"github.com/ErlanBelekov/todo-service/internal/infrastructure/memory"
	"github.com/ErlanBelekov/todo-service/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/todo-service/internal/log"
	"github.com/ErlanBelekov/todo-service/internal/metrics"
	"github.com/ErlanBelekov/todo-service/internal/repository"
	httptransport "github.com/ErlanBelekov/todo-service/internal/transport/http"
	"github.com/ErlanBelekov/todo-service/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET not set, using the well-known development fallback; tokens are forgeable")
	}

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// The todo store is in-memory by default; DATABASE_URL swaps in
	// postgres behind the same interface.
	var (
		store  repository.TodoStore
		pinger health.Pinger
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		store = postgres.NewTodoStore(pool)
		pinger = pool
		logger.Info("using postgres todo store")
	} else {
		memStore := memory.NewTodoStore()
		store = memStore
		pinger = memStore
		logger.Info("using in-memory todo store; todos are lost on restart")
	}

	directory := memory.NewUserDirectory()

	authUsecase := usecase.NewAuthUsecase(directory, []byte(cfg.JWTSecret), cfg.TokenTTL())
	todoUsecase := usecase.NewTodoUsecase(store)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	todoHandler := handler.NewTodoHandler(todoUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pinger, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, todoHandler, []byte(cfg.JWTSecret)),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

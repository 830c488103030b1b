package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/castboard/castboard/internal/actors"
	"github.com/castboard/castboard/internal/app"
	"github.com/castboard/castboard/internal/auth"
	"github.com/castboard/castboard/internal/movies"
	"github.com/castboard/castboard/internal/platform/db"
	"github.com/castboard/castboard/internal/roles"
	"github.com/castboard/castboard/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	jwksOpts := []auth.JWKSOption{}
	if cfg.JWKSCacheTTL > 0 {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping", slog.Any("error", err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		jwksOpts = append(jwksOpts, auth.WithCache(redisClient, cfg.JWKSCacheTTL))
	}

	resolver := auth.NewJWKSClient(cfg.AuthDomain, logger, jwksOpts...)
	verifier := auth.NewVerifier(resolver, cfg.AuthAudience, cfg.AuthDomain)
	authMiddleware := auth.Middleware{Verifier: verifier, Logger: logger}

	auditLogger := shared.NewAuditLogger(pool)

	actorsRepo := actors.NewRepository(pool)
	actorsService := actors.NewService(actorsRepo, auditLogger)
	actorsHandler := actors.NewHandler(logger, actorsService, authMiddleware)

	moviesRepo := movies.NewRepository(pool)
	moviesService := movies.NewService(moviesRepo, auditLogger)

	rolesRepo := roles.NewRepository(pool)
	rolesService := roles.NewService(rolesRepo, auditLogger)

	moviesHandler := movies.NewHandler(logger, moviesService, rolesService, authMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ActorsHandler: actorsHandler,
		MoviesHandler: moviesHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

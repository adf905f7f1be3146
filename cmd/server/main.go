package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"facets_backend/internal/app/di"
	"facets_backend/internal/app/router"
	"facets_backend/internal/config"
	"facets_backend/internal/platform/db"
	"facets_backend/internal/platform/http/middleware"
	"facets_backend/internal/platform/logger"
	infraredis "facets_backend/internal/platform/redis"
	"facets_backend/internal/version"
)

const shutdownTimeout = 10 * time.Second

// @title                      Facets Example API
// @description                CRUD resource for example items with filtering, pagination and custom actions.
// @version                    0.1.0
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.yaml")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting %s on :%d (env=%s)", version.String(), cfg.HTTPServer.Port, cfg.Environment.Name)
	gin.SetMode(cfg.HTTPServer.Mode)

	// db
	gdb, err := db.Open(cfg.Database.DB(), cfg.Database.ConnectTimeout, cfg.Database.RunMigrations, log)
	if err != nil {
		return err
	}
	defer closeDB(gdb, log)

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		rcfg := infraredis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg, log); err != nil {
			log.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("Failed to close Redis client", logger.Error(err))
				}
			}()
		}
	}

	// JWT_SECRETチェック
	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret is not set. Write endpoints are unauthenticated.")
	}

	examples := di.NewExampleHandler(gdb, rdb, cfg, log)
	engine := router.NewRouter(examples, log, router.Options{
		MountPrefix: cfg.HTTPServer.MountPrefix,
		JWTSecret:   cfg.Auth.JWTSecret,
		RateLimit:   middleware.RateLimitConfig{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
		Swagger:     cfg.HTTPServer.Swagger,
		Ready:       func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPServer.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

func closeDB(gdb *gorm.DB, log logger.Logger) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("Failed to close database", logger.Error(err))
	}
}

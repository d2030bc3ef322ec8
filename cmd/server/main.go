package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"contactbook/docs"
	"contactbook/internal/auth"
	"contactbook/internal/cache"
	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/handler"
	"contactbook/internal/logger"
	"contactbook/internal/router"
	"contactbook/internal/service"
)

// @title Contact Book API
// @version 1.0
// @description Personal contact manager: register, log in and keep a private list of contacts.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
// @description Token returned by /api/login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ResetDB {
		zlog.Warn("RESET_DB=true detected, dropping users and contacts")
	}
	store, err := db.Open(ctx, cfg)
	if err != nil {
		zlog.Fatal("database init", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()
	zlog.Info("database ready", zap.String("driver", cfg.DatabaseDriver))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, zlog)
	defer func() { _ = cacheClient.Close() }()
	if cacheClient == nil {
		zlog.Info("REDIS_ADDR not set, contact cache and logout revocation disabled")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(store.Users, jwtService, tokenStore, zlog)
	contactService := service.NewContactService(store.Contacts, cacheClient, zlog)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, zlog, auth.Gateway(jwtService, tokenStore), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Contact: handler.NewContactHandler(contactService),
		Health:  handler.NewHealthHandler(store.Checker, cacheClient),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	zlog.Info("swagger documentation available", zap.String("url", swaggerURL(cfg.SwaggerHost, cfg.ServerPort)))

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}

// swaggerURL builds the browsable docs URL. host may already carry a scheme.
func swaggerURL(host, port string) string {
	if host == "" {
		host = "localhost:" + port
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/") + "/swagger/index.html"
}

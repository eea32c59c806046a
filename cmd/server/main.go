package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/zest/product-api/internal/bootstrap"
	"github.com/zest/product-api/internal/config"
	"github.com/zest/product-api/internal/db"
	"github.com/zest/product-api/internal/events"
	"github.com/zest/product-api/internal/httpserver"
	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/middleware"
	"github.com/zest/product-api/internal/repo"
	"github.com/zest/product-api/internal/search"
	"github.com/zest/product-api/internal/service"
	"github.com/zest/product-api/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: gdb}

	seedCtx := logging.IntoContext(initCtx, logger)
	if err := bootstrap.Seed(seedCtx, gormRepo, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		cancel()
		log.Fatalf("bootstrap error: %v", err)
	}
	cancel()

	producer := events.NewProducer(cfg.KafkaBrokers)

	var index *search.Index
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = &search.Index{ES: esClient, Name: cfg.ESIndex}
	} else {
		logger.Info("search disabled", "reason", "ES_URL not configured")
	}

	signer := tokens.NewSigner(cfg.JWTSecret, cfg.AccessTokenTTL)

	authSvc := &service.AuthService{
		Repo:       gormRepo,
		Signer:     signer,
		RefreshTTL: cfg.RefreshTokenTTL,
		Producer:   producer,
	}
	catalogSvc := &service.CatalogService{
		Repo:     gormRepo,
		Producer: producer,
		Index:    index,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		AuthMW:         middleware.NewAuth(signer),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/georgemunganga/salesboard/internal/config"
	"github.com/georgemunganga/salesboard/internal/database"
	"github.com/georgemunganga/salesboard/internal/modules/feed"
	"github.com/georgemunganga/salesboard/internal/modules/product"
	"github.com/georgemunganga/salesboard/internal/modules/report"
	"github.com/georgemunganga/salesboard/internal/server"
	"github.com/georgemunganga/salesboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}))
	defer func() { _ = baseLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		baseLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		baseLogger.Fatal("failed to ensure schema", zap.Error(err))
	}
	baseLogger.Info("connected to postgres")

	// ── Products ─────────────────────────────────────────────
	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService, logger.Named(baseLogger, "http.product"))

	// ── Reports ──────────────────────────────────────────────
	reportRepo := report.NewPostgresRepository(db)
	reportService := report.NewService(reportRepo, logger.Named(baseLogger, "svc.report"))
	reportHandler := report.NewHandler(reportService, logger.Named(baseLogger, "http.report"))

	// ── Feed import ──────────────────────────────────────────
	feedClient := feed.NewHTTPClient(cfg.Feed.URL, cfg.Feed.Timeout)
	importer := feed.NewImporter(feedClient, productRepo, logger.Named(baseLogger, "feed.importer"))
	feedHandler := feed.NewHandler(importer, logger.Named(baseLogger, "http.feed"))

	router := server.New(server.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             db,
		Logger:         logger.Named(baseLogger, "http"),
	}, feedHandler, productHandler, reportHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // /init-db inserts the whole feed before answering
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		baseLogger.Error("failed to close postgres pool", zap.Error(err))
	}
	baseLogger.Info("graceful shutdown complete")
}

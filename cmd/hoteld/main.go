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

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/internal/api"
	"hotel-reservation-backend/internal/booking"
	"hotel-reservation-backend/internal/db"
	"hotel-reservation-backend/internal/logger"
	"hotel-reservation-backend/internal/model"
	"hotel-reservation-backend/internal/notification"
	"hotel-reservation-backend/internal/store"
)

const serviceName = "hoteld"

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("configuration loaded", zap.String("path", configPath))

	// Initialize database
	gormDB, err := db.Init(&cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	if cfg.Database.Seed {
		inserted, err := appStore.Seed(ctx, model.DefaultLayout)
		if err != nil {
			zlog.Fatal("failed to seed rooms", zap.Error(err))
		}
		zlog.Info("room table seeded", zap.Int64("inserted", inserted))
	}

	coordinator := booking.NewCoordinator(appStore, zlog.Named("booking"))

	var webpushOptions *webpush.Options
	var notifier api.Notifier
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			zlog.Fatal("push is enabled but VAPID keys are not configured")
		}
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}

		workers := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions, zlog.Named("notification"))
		workers.Start(ctx)
		notifier = workers
		zlog.Info("booking alerts enabled", zap.Int("workers", cfg.WorkerPool.Size))
	}

	handler := api.NewHandler(appStore, coordinator, webpushOptions, zlog.Named("api")).
		WithNotifier(notifier).
		WithRandomizeRatio(cfg.Booking.RandomizeRatio)
	router := api.NewRouter(handler, cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zlog.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP server Shutdown", zap.Error(err))
	}
	cancel()

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
	zlog.Info("server gracefully stopped")
}

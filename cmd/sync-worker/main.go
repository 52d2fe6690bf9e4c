package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/sync"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/metrics"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/migrate"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "sync-worker"

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	syncService, err := sync.NewService(sync.ServiceParams{
		Logger:    logg,
		Repo:      summary.NewRepository(dbClient.DB()),
		Tx:        dbClient,
		Sales:     remote.NewSalesClient(cfg.Upstreams, logg),
		Vehicles:  remote.NewVehicleClient(cfg.Upstreams, logg),
		Customers: remote.NewCustomerClient(cfg.Upstreams, logg),
		Locks:     sync.NewRedisLockProvider(redisClient, cfg.Sync.LockTTL),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	worker, err := sync.NewWorker(sync.WorkerParams{
		Logger:   logg,
		Service:  syncService,
		Metrics:  metrics.NewSyncJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Sync.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync worker", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Sync.Interval.String(),
	})
	logg.Info(ctx, "starting sync worker")

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}

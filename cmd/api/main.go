package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/DangTDuy/ev-dealer-management-sub001/api/routes"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/export"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/forecast"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/reports"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/sync"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/migrate"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	summaryRepo := summary.NewRepository(dbClient.DB())
	salesClient := remote.NewSalesClient(cfg.Upstreams, logg)
	vehicleClient := remote.NewVehicleClient(cfg.Upstreams, logg)
	customerClient := remote.NewCustomerClient(cfg.Upstreams, logg)
	userClient := remote.NewUserClient(cfg.Upstreams, logg)

	syncService, err := sync.NewService(sync.ServiceParams{
		Logger:    logg,
		Repo:      summaryRepo,
		Tx:        dbClient,
		Sales:     salesClient,
		Vehicles:  vehicleClient,
		Customers: customerClient,
		Locks:     sync.NewRedisLockProvider(redisClient, cfg.Sync.LockTTL),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(reports.ServiceParams{
		Logger:    logg,
		Repo:      summaryRepo,
		Sales:     salesClient,
		Vehicles:  vehicleClient,
		Customers: customerClient,
		Users:     userClient,
		Config:    cfg.Reports,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	forecastService, err := forecast.NewService(forecast.ServiceParams{
		Logger: logg,
		Repo:   summaryRepo,
		Config: cfg.Reports,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create forecast service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(export.ServiceParams{
		Logger: logg,
		Repo:   summaryRepo,
		Store:  export.NewStore(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Reports:  reportService,
			Forecast: forecastService,
			Export:   exportService,
			Sync:     syncService,
			Summary:  summaryRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

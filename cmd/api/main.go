package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/api"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/cache"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/config"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/domain"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/policy"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository/memory"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/repository/postgres"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/service"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/storage"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/sweep"
	"github.com/FiyinfoluwaDav/Datathon-2025/internal/triage"
	"github.com/FiyinfoluwaDav/Datathon-2025/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	gin.SetMode(ginMode(cfg.Server.Mode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories: postgres when configured, in-memory store otherwise.
	var (
		invRepo repository.InventoryRepository
		reqRepo repository.RestockRepository
	)
	if cfg.Database.Configured() {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to initialize database")
		}
		invRepo = postgres.NewInventoryRepository(db)
		reqRepo = postgres.NewRestockRepository(db)
	} else {
		logger.Log.Warn().Msg("no database configured, using in-memory store")
		store := memory.NewStore()
		invRepo = store.Inventory()
		reqRepo = store.Restock()
	}

	lowStockCache, err := cache.NewLowStockCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		lowStockCache = cache.NewNoopLowStockCache()
	}

	pol := policy.New(policyConfig(cfg.Restock))
	inventoryService := service.NewInventoryService(invRepo, lowStockCache)
	restockService := service.NewRestockService(invRepo, reqRepo, lowStockCache)
	sweepEngine := sweep.New(invRepo, reqRepo, pol)

	// Optional sweep report archive.
	var archive storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(ctx, cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("report storage unavailable, continuing without it")
		} else {
			archive = client
		}
	}

	// Background auto-restock sweep.
	if cfg.Sweep.IntervalMinutes > 0 {
		runner := sweep.NewRunner(
			sweepEngine,
			time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute,
			archive,
			cfg.Storage.Prefix,
		)
		go runner.Start(ctx)
	}

	services := &api.Services{
		Inventory: inventoryService,
		Restock:   restockService,
		Sweep:     sweepEngine,
	}
	if cfg.Triage.BaseURL != "" {
		services.Triage = triage.NewClient(cfg.Triage.BaseURL, time.Duration(cfg.Triage.TimeoutSeconds)*time.Second)
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Log.Info().Str("addr", addr).Msg("server starting")
	if err := router.Run(addr); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func policyConfig(cfg config.RestockConfig) policy.Config {
	tier, ok := domain.ParseTier(cfg.MinimumTier)
	if !ok {
		logger.Log.Warn().Str("tier", cfg.MinimumTier).Msg("unknown minimum tier, using default")
		tier = domain.TierUnknown
	}

	return policy.Config{
		MinimumTier: tier,
		TargetDays:  cfg.TargetDays,
		MinQuantity: cfg.MinQuantity,
	}
}

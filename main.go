package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/database"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/handlers"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"github.com/vladimiradmaev/fittrack/internal/repository"
	"github.com/vladimiradmaev/fittrack/internal/server"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/state"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using environment")
	}

	if err := run(); err != nil {
		logger.Fatal("FitTrack API stopped with error", "error", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting FitTrack API...", "storage", cfg.Storage, "ai_provider", cfg.AI.Provider)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	locker, closeLocker, err := openLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	generator, err := services.NewRecipeGenerator(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to create recipe generator: %w", err)
	}
	if c, ok := generator.(io.Closer); ok {
		defer c.Close()
	}
	if !cfg.HasAIKey() {
		logger.Warn("No AI key configured, recipe generation is disabled", "provider", cfg.AI.Provider)
	}

	ledger := services.NewLedger(store, loc)
	deps := handlers.Dependencies{
		UserService:    services.NewUserService(store),
		CatalogService: services.NewCatalogService(store, locker),
		LogService:     services.NewLogService(store),
		Ledger:         ledger,
		RecipeService:  services.NewRecipeService(store, store, ledger, generator, cfg.AI.Timeout),
		CartService:    services.NewCartService(store, locker),
		Errors:         apperrors.NewHandler(logger.GetLogger()),
	}
	logger.Info("Services initialized successfully")

	return server.New(*cfg, deps).Serve(ctx)
}

func openStore(cfg *config.Config) (domain.Store, func(), error) {
	if cfg.Storage != config.StoragePostgres {
		logger.Info("Using in-memory storage")
		return repository.NewMemoryStore(), func() {}, nil
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repository.NewPostgresStore(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}, nil
}

func openLocker(cfg *config.Config) (state.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		return state.NewManager(), func() {}, nil
	}

	redisLocker, err := state.NewRedisManager(cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("Using Redis key locks", "addr", cfg.Redis.Addr)
	return redisLocker, func() { redisLocker.Close() }, nil
}

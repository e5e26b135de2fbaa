package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/spanapp/span-backend/internal/config"
	"github.com/spanapp/span-backend/internal/delivery/http"
	"github.com/spanapp/span-backend/internal/delivery/http/handler"
	"github.com/spanapp/span-backend/internal/delivery/http/middleware"
	"github.com/spanapp/span-backend/internal/infrastructure/database"
	"github.com/spanapp/span-backend/internal/infrastructure/server"
	"github.com/spanapp/span-backend/internal/matching"
	"github.com/spanapp/span-backend/internal/repository"
	"github.com/spanapp/span-backend/internal/repository/postgres"
	"github.com/spanapp/span-backend/internal/repository/rediscache"
	"github.com/spanapp/span-backend/internal/usecase/feed"
	"github.com/spanapp/span-backend/internal/usecase/profile"
	"github.com/spanapp/span-backend/internal/usecase/signal"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional: without it the ledger is rebuilt from postgres
	// on every request.
	var redisClient *redis.Client
	ledgerCache := rediscache.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		ledgerCache = rediscache.NewLedgerCache(redisClient, cfg.Feed.LedgerCacheTTL)
	} else {
		logger.Warn().Msg("redis not configured, ledger caching disabled")
	}

	// Initialize repositories
	var (
		profileRepo repository.ProfileRepository = postgres.NewProfileRepository(db)
		signalRepo  repository.SignalRepository  = postgres.NewSignalRepository(db)
	)

	// Initialize use cases
	signalUseCase := signal.NewSignalUseCase(
		signalRepo,
		ledgerCache,
		logger,
	)

	feedUseCase := feed.NewFeedUseCase(
		profileRepo,
		signalUseCase,
		matching.NewRanker(nil),
		cfg.Feed.CandidateLimit,
		logger,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
	)

	// Initialize handlers
	feedHandler := handler.NewFeedHandler(feedUseCase)
	signalHandler := handler.NewSignalHandler(signalUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)

	// Initialize middleware
	identityMiddleware := middleware.NewIdentityMiddleware()

	// Initialize router
	router := http.NewRouter(
		feedHandler,
		signalHandler,
		profileHandler,
		identityMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("error closing redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/handler"
	"github.com/ufukozendev/noobgg-sub002/internal/middleware"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	"github.com/ufukozendev/noobgg-sub002/internal/router"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	"github.com/ufukozendev/noobgg-sub002/pkg/cache"
	"github.com/ufukozendev/noobgg-sub002/pkg/circuit"
	"github.com/ufukozendev/noobgg-sub002/pkg/database"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/redis"
	"github.com/ufukozendev/noobgg-sub002/pkg/rowversion"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const localCacheSweep = time.Minute

// application owns every long-lived dependency of the serve command
type application struct {
	db     *gorm.DB
	redis  *redis.Client
	local  *cache.Cache
	engine *gin.Engine
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	if cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}
	app := &application{db: db}

	// Repositories
	gameRepo := repository.NewGameRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	distributorRepo := repository.NewDistributorRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	gameRankRepo := repository.NewGameRankRepository(db)
	eventRepo := repository.NewEventRepository(db)
	lobbyRepo := repository.NewLobbyRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)

	// List cache: Redis behind a breaker when enabled, in-memory always
	app.local = cache.NewCache(localCacheSweep)
	var (
		primary     service.CacheStore
		breaker     *circuit.Breaker
		redisPinger handler.Pinger
	)
	if cfg.Redis.Enabled {
		rc, err := redis.NewClient(cfg)
		if err != nil {
			logger.WarnWithContext(ctx, "Redis unavailable, serving lists from the local cache").Err(err).Log()
		} else {
			app.redis = rc
			primary = rc
			redisPinger = rc
			breaker = circuit.NewBreaker("redis", circuit.DefaultConfig(), logger.GetLogger())
		}
	}
	cacheService := service.NewCacheService(primary, app.local, breaker, cfg.Redis.ListTTL)

	// Services
	policy := rowversion.Policy{Required: cfg.API.RowVersionRequired}
	tokens := service.NewTokenService(cfg.Auth)

	v, err := validation.New(cfg.Locale.Default)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("init validator: %w", err)
	}

	// Handlers
	handlers := router.Handlers{
		Games:        handler.NewGameHandler(service.NewGameService(gameRepo, cacheService), v),
		Platforms:    handler.NewPlatformHandler(service.NewPlatformService(platformRepo, cacheService), v),
		Distributors: handler.NewDistributorHandler(service.NewDistributorService(distributorRepo, cacheService), v),
		Languages:    handler.NewLanguageHandler(service.NewLanguageService(languageRepo, cacheService), v),
		GameRanks:    handler.NewGameRankHandler(service.NewGameRankService(gameRankRepo, cacheService), v),
		Events:       handler.NewEventHandler(service.NewEventService(eventRepo), v),
		Lobbies:      handler.NewLobbyHandler(service.NewLobbyService(lobbyRepo, policy), v),
		UserProfiles: handler.NewUserProfileHandler(service.NewUserProfileService(profileRepo, policy), v),
		Health:       handler.NewHealthHandler(gameRepo, redisPinger),
	}

	app.engine = router.NewRouter(handlers, middleware.NewAuthMiddleware(tokens), v, cfg).SetupRoutes()

	logger.GetLogger().Info("Application wired",
		zap.Bool("redis_enabled", app.redis != nil),
		zap.Bool("row_version_required", policy.Required),
		zap.Strings("locales", cfg.Locale.Supported),
	)
	return app, nil
}

// Close releases the connections in reverse order of creation
func (a *application) Close() {
	if a.local != nil {
		_ = a.local.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.GetLogger().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.CloseDB(a.db); err != nil {
		logger.GetLogger().Warn("Failed to close database", zap.Error(err))
	}
}

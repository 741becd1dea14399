package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxuni/miniapp-backend/internal/cache"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/database"
	"github.com/maxuni/miniapp-backend/internal/handler"
	"github.com/maxuni/miniapp-backend/internal/logger"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/repository"
	"github.com/maxuni/miniapp-backend/internal/router"
	"github.com/maxuni/miniapp-backend/internal/search"
	"github.com/maxuni/miniapp-backend/internal/service"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/maxuni/miniapp-backend/internal/validator"
	"github.com/maxuni/miniapp-backend/internal/worker"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("cache_backend", cfg.CacheBackend).
		Str("upstream", cfg.UpstreamBaseURL).
		Msg("Starting mini-app backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Cache Backend ─────────────────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var store cache.Store
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		store = cache.NewRedisStore(rdb)

	case config.CacheBackendSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open SQLite cache")
		}
		defer db.Close()
		sqliteStore, err := cache.NewSQLiteStore(ctx, db)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare SQLite cache")
		}
		store = sqliteStore
		go worker.NewCacheJanitor(sqliteStore, cfg.CacheTTL, log).Start(workerCtx)

	default:
		log.Warn().Msg("Using in-process cache; entries are lost on restart")
		store = cache.NewMemoryStore()
	}
	resourceCache := cache.New(store, cfg.CacheTTL, cache.WithLogger(log))

	// ─── Initialize Repositories ───────────────────────────────────────
	sessionRepo := repository.NewSessionRepository(pool)
	preferenceRepo := repository.NewPreferenceRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	api := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)

	authService := service.NewAuthService(cfg, sessionRepo)
	portalService := service.NewPortalService(api, resourceCache, cfg.StaleAfter, cfg.UpstreamTimeout, log)
	navService := service.NewNavigationService(store, log)
	preferenceService := service.NewPreferenceService(preferenceRepo, log)

	preloader := worker.NewPreloader(portalService, resourceCache, worker.NewHub(), worker.PreloaderConfig{
		Interval:    cfg.PreloadInterval,
		MinInterval: cfg.MinPreloadInterval,
		Timeout:     cfg.PreloadTimeout,
		Resources:   config.Resource.Tracked(),
	}, log)

	sessionService := service.NewSessionService(api, authService, sessionRepo, portalService, navService, preloader, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(sessionService),
		Portal:     handler.NewPortalHandler(portalService, sessionService, preloader, log),
		Nav:        handler.NewNavHandler(navService, search.Default()),
		Preference: handler.NewPreferenceHandler(preferenceService),
		WS:         handler.NewWSHandler(preloader, log, cfg.AllowedOrigins),
		System:     handler.NewSystemHandler(preloader, log),
	}

	// ─── Resume Background Updates ────────────────────────────────────
	// Loops of users linked before the restart come back without waiting
	// for their first request. Each first check lands at a random point of
	// the refresh interval.
	if ids, err := sessionRepo.ListUserIDs(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to list stored sessions")
	} else {
		for _, id := range ids {
			sessionService.Resume(id)
		}
		log.Info().Int("sessions", len(ids)).Msg("Background updates resumed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(workerCtx, cfg.LoginRateLimit, time.Minute)
	r := router.SetupRouter(authService, sessionService, loginLimiter, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop refresh loops and wait for in-flight passes and page refreshes.
	preloader.Close()
	portalService.Wait()
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

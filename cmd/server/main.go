/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift schedule engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment
  2. Build the immutable registry (config file or built-in presets)
  3. Select a cache backend (memory, redis, none)
  4. Initialize the SQLite QA store
  5. Configure HTTP router and start the coverage sweeper
  6. Start server with graceful shutdown

ENVIRONMENT:
  SERVER_PORT             HTTP server port (default: 8080)
  ENGINE_CONFIG_PATH      Declarative JSON config; empty = built-in presets
  CACHE_BACKEND           memory | redis | none (default: memory)
  CACHE_TTL_SECONDS       Cached range lifetime (default: 3600)
  REDIS_ADDR              Redis address when CACHE_BACKEND=redis
  STORE_PATH              SQLite path, ":memory:" for in-memory (default: engine.db)
  SWEEP_ENABLED           Background coverage sweeper on/off (default: true)
  SWEEP_INTERVAL_SECONDS  Sweep period (default: 3600)
  SWEEP_WINDOW_DAYS       Rolling validation window (default: 365)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Stop the coverage sweeper
  3. Wait for active requests to complete (SERVER_SHUTDOWN_TIMEOUT)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run on the built-in Swedish industry presets
  ./server

  # Run with a custom roster document and redis cache
  ENGINE_CONFIG_PATH=./rosters.json CACHE_BACKEND=redis ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/company.go: Registry construction
*/
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skiftappen/shift-engine/api"
	"github.com/skiftappen/shift-engine/config"
	"github.com/skiftappen/shift-engine/factory"
	"github.com/skiftappen/shift-engine/schedule"
	"github.com/skiftappen/shift-engine/schedule/cache"
	"github.com/skiftappen/shift-engine/store/sqlite"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Build the registry. Everything downstream treats it as immutable.
	registry, err := buildRegistry(cfg)
	if err != nil {
		slog.Error("failed to build registry", "error", err)
		os.Exit(1)
	}
	slog.Info("registry loaded", "companies", len(registry.List()))

	scheduleCache := buildCache(cfg)

	store, err := sqlite.New(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to initialize database", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	handler := api.NewHandler(registry, scheduleCache, store)
	router := api.NewRouter(handler)

	sweeper := api.NewCoverageSweeper(store, handler)
	sweeper.Enabled = cfg.Sweep.Enabled
	sweeper.Interval = time.Duration(cfg.Sweep.IntervalSeconds) * time.Second
	sweeper.WindowDays = cfg.Sweep.WindowDays
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", "http://localhost:"+cfg.Server.Port+"/api")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func buildRegistry(cfg *config.Config) (*schedule.Registry, error) {
	f := factory.NewEngineFactory()
	if cfg.ConfigPath != "" {
		slog.Info("loading roster configuration", "path", cfg.ConfigPath)
		return f.LoadFile(cfg.ConfigPath)
	}
	slog.Info("no config path set, using built-in presets")
	return f.Build(factory.PresetDocument())
}

func buildCache(cfg *config.Config) schedule.Cache {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		slog.Info("using redis schedule cache", "addr", cfg.Redis.Addr, "ttl", ttl)
		return cache.NewRedis(client, ttl)
	case "none":
		slog.Info("schedule cache disabled")
		return schedule.NopCache{}
	default:
		slog.Info("using in-memory schedule cache", "ttl", ttl)
		return cache.NewMemory(ttl)
	}
}

package main

import (
	"context"   // Startup load and shutdown deadline
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus"          // Metrics registry
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging

	"house_management/internal/api"                  // HTTP handlers
	"house_management/internal/config"               // Configuration
	"house_management/internal/domain"               // Tariff
	"house_management/internal/gateway"              // Remote sync
	"house_management/internal/names"                // Name suggestions
	"house_management/internal/service"              // Console
	"house_management/internal/tablestore"           // Store interface
	"house_management/internal/tablestore/gormstore" // MySQL backend
	"house_management/internal/tablestore/postgrest" // Supabase backend
	"house_management/internal/tree"                 // Entity tree
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote tables, loaded once and then written through the queue
	gw := gateway.New(openStore(cfg), gateway.Options{
		QueueSize:   cfg.SyncQueueSize,
		MaxAttempts: cfg.SyncMaxAttempts,
		RetryWait:   cfg.SyncRetryWait,
	}, gateway.NewMetrics(prometheus.DefaultRegisterer))
	gw.Start(ctx)

	tariff := domain.Tariff{WaterUnitPrice: cfg.WaterUnitPrice, ElectricityUnitPrice: cfg.ElectricUnitPrice}
	var world *tree.World
	if snap := gw.LoadAll(ctx); snap != nil {
		world = tree.Build(*snap, tariff)
	} else {
		world = tree.Seed(tariff) // Unconfigured or unreachable store
	}
	console := service.New(world, gw)

	// Optional Redis client for the name cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis unreachable, name suggestions are not cached")
			redisClient = nil
		}
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.Register(r, api.Deps{
		Console:   console,
		Names:     names.New(names.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, Redis: redisClient}),
		JWTSecret: cfg.JWTSecret,
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus scrape endpoint

	srv := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
	gw.Close() // Drain pending writes before the worker context is cancelled
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// openStore returns the configured backend, or nil to run on seed data
func openStore(cfg *config.Config) tablestore.Store {
	switch cfg.StoreBackend {
	case config.BackendMySQL:
		db, err := gormstore.Open(gormstore.DSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName))
		if err != nil {
			logrus.WithError(err).Warn("MySQL unavailable, falling back to seed data")
			return nil
		}
		return gormstore.New(db)
	case config.BackendSupabase:
		if !postgrest.Configured(cfg.SupabaseURL) {
			return nil
		}
		return postgrest.New(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseSchema)
	}
	logrus.WithField("backend", cfg.StoreBackend).Warn("Unknown store backend")
	return nil
}

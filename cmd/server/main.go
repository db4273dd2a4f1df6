// Package main is the entry point for the EcoMate carbon backend server.
// It provides a REST API for community carbon tracking: accounts,
// communities, goals, activity logging, a social feed, leaderboards, a
// community analytics view, and a standalone emissions calculator.
//
// Architecture:
//   - Postgres (pgx) holds users, communities, goals, logs, and posts
//   - The calculator and the aggregation/ranking engine are pure in-process
//     computations; handlers feed them rows and serve the results
//   - Redis caches computed leaderboards and analytics with a short TTL
//   - A background worker keeps the global leaderboard cache warm
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecomate/carbon-server/internal/cache"
	"github.com/ecomate/carbon-server/internal/config"
	"github.com/ecomate/carbon-server/internal/database"
	"github.com/ecomate/carbon-server/internal/handlers"
	"github.com/ecomate/carbon-server/internal/middleware"
	"github.com/ecomate/carbon-server/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load config: %v", err)
	}

	sugar.Infow("Starting EcoMate Carbon Server",
		"port", cfg.Port,
		"env", cfg.Environment,
	)

	// Initialize database connection pool
	db, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it every leaderboard request recomputes
	// from Postgres.
	store, err := cache.New(cfg.RedisURL, sugar)
	if err != nil {
		sugar.Warnf("Redis unavailable, leaderboard caching disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	// Initialize services
	userSvc := services.NewUserService(db, sugar)
	communitySvc := services.NewCommunityService(db, sugar)
	goalSvc := services.NewGoalService(db, sugar)
	logSvc := services.NewActivityLogService(db, store, sugar)
	feedSvc := services.NewFeedService(db, sugar)
	leaderboardSvc := services.NewLeaderboardService(logSvc, userSvc, store,
		cfg.LeaderboardCacheTTL, cfg.GlobalLeaderboardSize, cfg.CommunityLeaderboardSize, sugar)
	statsSvc := services.NewCommunityStatsService(logSvc, goalSvc, communitySvc, store,
		cfg.LeaderboardCacheTTL, sugar)
	snapshotWorker := services.NewSnapshotWorker(leaderboardSvc, sugar)

	// Start background snapshot worker (keeps the global board warm)
	go snapshotWorker.Start(context.Background(), cfg.SnapshotInterval)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userSvc, sugar)
	communityHandler := handlers.NewCommunityHandler(communitySvc, sugar)
	goalHandler := handlers.NewGoalHandler(goalSvc, communitySvc, sugar)
	logHandler := handlers.NewActivityLogHandler(logSvc, goalSvc, communitySvc, sugar)
	feedHandler := handlers.NewFeedHandler(feedSvc, communitySvc, sugar)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardSvc, communitySvc, sugar)
	statsHandler := handlers.NewCommunityStatsHandler(statsSvc, sugar)
	calculatorHandler := handlers.NewCalculatorHandler(sugar)
	healthHandler := handlers.NewHealthHandler(db, store, sugar)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecureHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limiting
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)
		r.Get("/health/ready", healthHandler.Ready)

		// Standalone calculator (public, stateless)
		r.Route("/calculator", func(r chi.Router) {
			r.Post("/emissions", calculatorHandler.Calculate)
			r.Post("/emissions/batch", calculatorHandler.CalculateBatch)
		})

		// Accounts
		r.Post("/users", userHandler.SignUp)
		r.Get("/users/{userID}", userHandler.Get)

		// Communities and their resources
		r.Route("/communities", func(r chi.Router) {
			r.Get("/", communityHandler.List)
			r.Get("/{communityID}", communityHandler.Get)
			r.Get("/{communityID}/goals", goalHandler.List)
			r.Get("/{communityID}/activity-logs", logHandler.List)
			r.Get("/{communityID}/feed", feedHandler.List)
			r.Get("/{communityID}/analytics", statsHandler.Aggregate)

			// Writes require an authenticated user
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(cfg.JWTSecret))
				r.Post("/", communityHandler.Create)
				r.Post("/{communityID}/join", communityHandler.Join)
				r.Post("/{communityID}/goals", goalHandler.Create)
				r.Post("/{communityID}/activity-logs", logHandler.Create)
				r.Post("/{communityID}/feed", feedHandler.Create)
			})
		})

		// Leaderboards
		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/global", leaderboardHandler.Global)
			r.Get("/{communityID}", leaderboardHandler.Community)
		})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sugar.Infof("Server listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	sugar.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalf("Forced shutdown: %v", err)
	}

	sugar.Info("Server stopped")
}

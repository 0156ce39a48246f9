package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-marketplace-backend/config"
	_ "talent-marketplace-backend/docs" // Important for Swagger
	"talent-marketplace-backend/internal/delivery/http/middleware"
	v1 "talent-marketplace-backend/internal/delivery/http/v1"
	"talent-marketplace-backend/internal/repository/postgres"
	"talent-marketplace-backend/internal/repository/supabase"
	"talent-marketplace-backend/internal/usecase"
	"talent-marketplace-backend/pkg/auth"
	"talent-marketplace-backend/pkg/database"
	"talent-marketplace-backend/pkg/logger"
	"talent-marketplace-backend/pkg/redis"
	"talent-marketplace-backend/pkg/security"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Talent Marketplace API
// @version         1.0
// @description     Job marketplace backend: accounts, profiles, jobs and applications.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Registered first so it runs after every other deferred cleanup.
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting talent marketplace backend", "port", cfg.Port)

	secLog := security.NewSecurityLogger("talent-marketplace-api")
	defer func() { _ = secLog.Sync() }()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.DefaultPoolOptions())
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	redisClient, err := redis.Connect(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}

	// 5. Setup Auth Provider
	authProvider, err := supabase.NewAuthProvider(cfg.SupabaseUrl, cfg.SupabaseKey)
	if err != nil {
		logger.Log.Error("Failed to create auth provider", "error", err)
		os.Exit(1)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// 6. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	talentRepo := postgres.NewTalentRepository(dbPool)
	clientRepo := postgres.NewClientRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(authProvider, tokens, profileRepo, talentRepo, clientRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, clientRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	healthUC := usecase.NewHealthUsecase(healthChecks(dbPool.Ping, redisClient))

	// 8. Setup Security
	loginTracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)
	rateLimiter := middleware.NewRateLimiter(redisClient, secLog)
	go rateLimiter.RunSweeper(ctx, time.Minute)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		Tokens:        tokens,
		LoginGuard:    loginTracker,
		RateLimiter:   rateLimiter,
		SecLog:        secLog,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, quit, 5*time.Second); err != nil {
		logger.Log.Error("Listen failed", "error", err)
		exitCode = 1
		return
	}

	logger.Log.Info("Server exiting")
}

// serve runs srv until a signal arrives on quit, then shuts it down
// gracefully within timeout. A listener failure is returned at once instead
// of waiting for a signal that may never come.
func serve(srv *http.Server, quit <-chan os.Signal, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-quit:
		logger.Log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	return nil
}

// healthChecks probes Redis only when it is configured; running without it
// is a supported mode, not a degraded one.
func healthChecks(pingDB usecase.HealthCheck, redisClient *goredis.Client) map[string]usecase.HealthCheck {
	checks := map[string]usecase.HealthCheck{"database": pingDB}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redis.HealthCheck(ctx, redisClient)
		}
	}
	return checks
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"studentgigs/internal/app"
	"studentgigs/internal/config"
	"studentgigs/internal/database"
	apphttp "studentgigs/internal/http"
	"studentgigs/internal/http/handlers"
	"studentgigs/internal/http/metrics"
	httpmw "studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
	"studentgigs/internal/observability"
	"studentgigs/internal/payment"
	"studentgigs/internal/repository/postgres"
	"studentgigs/internal/scheduler"
	"studentgigs/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatal(err)
	}
	migrateCancel()

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, analyticsRepo, jwtProvider, cfg.TokenTTL)
	userService := app.NewUserService(userRepo, analyticsRepo)
	jobService := app.NewJobService(jobRepo, applicationRepo, analyticsRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, payment.SimulatedGate{}, analyticsRepo)
	adminService := app.NewAdminService(adminRepo, analyticsRepo, jwtProvider, cfg.AdminTokenTTL)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = httpmw.NewRedisLimiter(client)
		defer client.Close()
	}

	authHandler := handlers.NewAuthHandler(authService, cfg.CookieDomain, cfg.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	adminHandler := handlers.NewAdminHandler(adminService, userService, jobService, applicationService, cfg.CookieDomain, cfg.AdminTokenTTL)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	sweeper := scheduler.NewExpirySweeper(jobRepo, cfg.ExpirySweepRate, logger)
	sweeper.Start()
	defer sweeper.Stop()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		AdminHandler:       adminHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Limiter:            limiter,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

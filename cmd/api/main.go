package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/niramoy/clinic-api/internal/config"
	"github.com/niramoy/clinic-api/internal/email"
	appointmentHandler "github.com/niramoy/clinic-api/internal/handler/appointment"
	authHandler "github.com/niramoy/clinic-api/internal/handler/auth"
	catalogHandler "github.com/niramoy/clinic-api/internal/handler/catalog"
	healthHandler "github.com/niramoy/clinic-api/internal/handler/health"
	testimonialHandler "github.com/niramoy/clinic-api/internal/handler/testimonial"
	"github.com/niramoy/clinic-api/internal/middleware"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	"github.com/niramoy/clinic-api/internal/router"
	appointmentService "github.com/niramoy/clinic-api/internal/service/appointment"
	authService "github.com/niramoy/clinic-api/internal/service/auth"
	catalogService "github.com/niramoy/clinic-api/internal/service/catalog"
	eventService "github.com/niramoy/clinic-api/internal/service/event"
	testimonialService "github.com/niramoy/clinic-api/internal/service/testimonial"
	"github.com/niramoy/clinic-api/internal/storage"
	"github.com/niramoy/clinic-api/pkg/auth"
	"github.com/niramoy/clinic-api/pkg/logger"
	"github.com/niramoy/clinic-api/pkg/messaging"
	"github.com/niramoy/clinic-api/pkg/messaging/redis"
	"github.com/niramoy/clinic-api/pkg/metrics"
	"github.com/niramoy/clinic-api/pkg/security"
	"github.com/niramoy/clinic-api/pkg/worker"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("clinic")

	// Initialize repositories
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	testimonialRepo := postgres.NewTestimonialRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Initialize services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	hasher := security.NewBcryptHasher(security.DefaultCost)
	eventSvc := eventService.NewService(outboxRepo)

	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cacheCleanup := time.Duration(cfg.Cache.CleanupSeconds) * time.Second

	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	catalogSvc := catalogService.NewService(serviceRepo, cacheTTL, cacheCleanup)
	appointmentSvc := appointmentService.NewService(appointmentRepo, serviceRepo, eventSvc)
	testimonialSvc := testimonialService.NewService(testimonialRepo, eventSvc, cacheTTL, cacheCleanup)

	// File storage is optional; uploads fail with an explicit error when
	// it is not configured.
	var store storage.StorageService
	if cfg.Storage.CloudName != "" {
		store, err = storage.NewCloudinaryStorage(cfg.Storage, m)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize file storage")
		}
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	authH := authHandler.NewHandler(authSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc, store)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, store)
	testimonialH := testimonialHandler.NewHandler(testimonialSvc, store)
	healthH := healthHandler.NewHandler(db)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		catalogH,
		appointmentH,
		testimonialH,
		healthH,
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	// Outbox delivery runs in-process when Redis is enabled; otherwise
	// events stay queued for the standalone worker.
	if cfg.Redis.Enabled {
		workerLog := logger.NewLogger(nil)

		var broker messaging.Broker
		broker, err = redis.NewRedisBroker(redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, workerLog.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}

		var emailSvc email.Service
		if cfg.SMTP.Host != "" {
			emailSvc = email.NewGomailService(cfg.SMTP)
		}

		processor := worker.NewOutboxProcessor(outboxRepo, broker, emailSvc, m, workerLog.Zerolog())
		go processor.Start(workerCtx)
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

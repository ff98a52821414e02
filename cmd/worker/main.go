package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/niramoy/clinic-api/internal/config"
	"github.com/niramoy/clinic-api/internal/email"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	"github.com/niramoy/clinic-api/pkg/logger"
	"github.com/niramoy/clinic-api/pkg/messaging/redis"
	"github.com/niramoy/clinic-api/pkg/metrics"
	"github.com/niramoy/clinic-api/pkg/worker"
)

// workerConfig holds tunables specific to the standalone worker,
// taken from WORKER_* environment variables. Everything else comes
// from the shared config file.
type workerConfig struct {
	BatchSize      int           `envconfig:"BATCH_SIZE" default:"100"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	RetentionHours int           `envconfig:"RETENTION_HOURS" default:"168"`
	HealthPort     int           `envconfig:"HEALTH_PORT" default:"8081"`
}

func setupHealthCheck(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":"+strconv.Itoa(port), mux); err != nil {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var wcfg workerConfig
	if err := envconfig.Process("worker", &wcfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	workerLog := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, workerLog.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewGomailService(cfg.SMTP)
	}

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		emailSvc,
		metrics.NewMetrics("clinic_worker"),
		workerLog.Zerolog(),
		worker.WithBatchSize(wcfg.BatchSize),
		worker.WithPollInterval(wcfg.PollInterval),
		worker.WithRetention(time.Duration(wcfg.RetentionHours)*time.Hour),
	)

	setupHealthCheck(wcfg.HealthPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down worker...")
		cancel()
	}()

	processor.Start(ctx)
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/niramoy/clinic-api/internal/email"
	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository"
	"github.com/niramoy/clinic-api/pkg/messaging"
	"github.com/niramoy/clinic-api/pkg/metrics"
)

const (
	defaultBatchSize    = 100
	defaultPollInterval = 5 * time.Second
	defaultRetention    = 7 * 24 * time.Hour
	maxRetries          = 3
)

// OutboxProcessor drains pending outbox rows, publishes them to the
// message broker and sends the admin notification for fresh
// appointments. Events that keep failing are parked as FAILED after
// maxRetries attempts.
type OutboxProcessor struct {
	outboxRepo   repository.OutboxRepository
	broker       messaging.Broker
	emailSvc     email.Service
	metrics      *metrics.Metrics
	logger       *zerolog.Logger
	batchSize    int
	pollInterval time.Duration
	retention    time.Duration
}

type OutboxProcessorOption func(*OutboxProcessor)

func WithBatchSize(n int) OutboxProcessorOption {
	return func(p *OutboxProcessor) { p.batchSize = n }
}

func WithPollInterval(d time.Duration) OutboxProcessorOption {
	return func(p *OutboxProcessor) { p.pollInterval = d }
}

func WithRetention(d time.Duration) OutboxProcessorOption {
	return func(p *OutboxProcessor) { p.retention = d }
}

func NewOutboxProcessor(
	outboxRepo repository.OutboxRepository,
	broker messaging.Broker,
	emailSvc email.Service,
	m *metrics.Metrics,
	logger *zerolog.Logger,
	opts ...OutboxProcessorOption,
) *OutboxProcessor {
	p := &OutboxProcessor{
		outboxRepo:   outboxRepo,
		broker:       broker,
		emailSvc:     emailSvc,
		metrics:      m,
		logger:       logger,
		batchSize:    defaultBatchSize,
		pollInterval: defaultPollInterval,
		retention:    defaultRetention,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start blocks until ctx is cancelled, polling for pending events and
// periodically purging processed ones.
func (p *OutboxProcessor) Start(ctx context.Context) {
	p.logger.Info().
		Dur("poll_interval", p.pollInterval).
		Int("batch_size", p.batchSize).
		Msg("starting outbox processor")

	pollTicker := time.NewTicker(p.pollInterval)
	defer pollTicker.Stop()

	cleanupTicker := time.NewTicker(time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("outbox processor stopped")
			return
		case <-pollTicker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to process outbox batch")
			}
		case <-cleanupTicker.C:
			if err := p.cleanup(ctx); err != nil {
				p.logger.Error().Err(err).Msg("failed to clean up outbox")
			}
		}
	}
}

func (p *OutboxProcessor) processBatch(ctx context.Context) error {
	events, err := p.outboxRepo.GetPendingEvents(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending events: %w", err)
	}

	for _, ev := range events {
		start := time.Now()
		err := p.processEvent(ctx, ev)
		if p.metrics != nil {
			p.metrics.OutboxProcessingLatency.Observe(time.Since(start).Seconds())
		}

		if err != nil {
			p.markFailed(ctx, ev, err)
			continue
		}

		if err := p.outboxRepo.UpdateStatus(ctx, ev.ID, model.OutboxStatusProcessed, nil); err != nil {
			p.logger.Error().Err(err).Str("event_id", ev.ID.String()).Msg("failed to mark event processed")
			continue
		}
		if p.metrics != nil {
			p.metrics.OutboxEventsProcessed.Inc()
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, ev *model.OutboxEvent) error {
	if err := p.broker.Publish(ctx, ev.EventType, json.RawMessage(ev.Payload)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if ev.EventType == model.EventAppointmentCreated && p.emailSvc != nil {
		var appointment model.Appointment
		if err := json.Unmarshal(ev.Payload, &appointment); err != nil {
			return fmt.Errorf("failed to decode appointment payload: %w", err)
		}
		if err := p.emailSvc.SendAppointmentNotification(ctx, &appointment); err != nil {
			// Notification failures should not block the event; the broker
			// delivery already succeeded.
			p.logger.Error().Err(err).Str("event_id", ev.ID.String()).Msg("failed to send appointment notification")
		}
	}

	return nil
}

func (p *OutboxProcessor) markFailed(ctx context.Context, ev *model.OutboxEvent, cause error) {
	if p.metrics != nil {
		p.metrics.OutboxEventsFailed.Inc()
	}

	status := model.OutboxStatusPending
	if ev.RetryCount+1 >= maxRetries {
		status = model.OutboxStatusFailed
	}

	msg := cause.Error()
	if err := p.outboxRepo.UpdateStatus(ctx, ev.ID, status, &msg); err != nil {
		p.logger.Error().Err(err).Str("event_id", ev.ID.String()).Msg("failed to record event failure")
		return
	}

	p.logger.Warn().
		Err(cause).
		Str("event_id", ev.ID.String()).
		Str("event_type", ev.EventType).
		Int("retry_count", ev.RetryCount+1).
		Msg("outbox event delivery failed")
}

func (p *OutboxProcessor) cleanup(ctx context.Context) error {
	cutoff := time.Now().Add(-p.retention)
	deleted, err := p.outboxRepo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete processed events: %w", err)
	}
	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Msg("purged processed outbox events")
	}
	return nil
}

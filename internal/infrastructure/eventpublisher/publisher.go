package eventpublisher

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayemen27/siteledger/internal/domain"
)

// ErrQueueFull is returned when the publish queue cannot take more events.
var ErrQueueFull = errors.New("event queue full")

// Publisher delivers events to an external system.
type Publisher interface {
	Publish(ctx context.Context, event domain.SnapshotSavedEvent) error
}

// EventPublisher queues snapshot events and delivers them from a
// background worker, so aggregation never waits on the broker.
type EventPublisher struct {
	publisher    Publisher
	logger       zerolog.Logger
	queue        chan domain.SnapshotSavedEvent
	drainTimeout time.Duration
}

// Config for EventPublisher.
type Config struct {
	Publisher    Publisher
	Logger       zerolog.Logger
	QueueSize    int           // Events buffered before PublishSnapshotSaved fails
	DrainTimeout time.Duration // Time allowed to flush the queue on shutdown
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	return &EventPublisher{
		publisher:    cfg.Publisher,
		logger:       cfg.Logger,
		queue:        make(chan domain.SnapshotSavedEvent, cfg.QueueSize),
		drainTimeout: cfg.DrainTimeout,
	}
}

// PublishSnapshotSaved implements usecase.EventPublisher. It only enqueues.
func (ep *EventPublisher) PublishSnapshotSaved(ctx context.Context, event domain.SnapshotSavedEvent) error {
	select {
	case ep.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Start runs the delivery worker until ctx is cancelled, then flushes
// what is still queued.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().Int("queue_size", cap(ep.queue)).Msg("event publisher started")

	for {
		select {
		case <-ctx.Done():
			ep.drain()
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case event := <-ep.queue:
			ep.publishEvent(ctx, event)
		}
	}
}

func (ep *EventPublisher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), ep.drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-ep.queue:
			ep.publishEvent(ctx, event)
		default:
			return
		}
	}
}

func (ep *EventPublisher) publishEvent(ctx context.Context, event domain.SnapshotSavedEvent) {
	if err := ep.publisher.Publish(ctx, event); err != nil {
		ep.logger.Error().
			Err(err).
			Str("snapshot_id", event.SnapshotID).
			Str("project_id", event.ProjectID).
			Msg("failed to publish event")
		return
	}

	ep.logger.Debug().
		Str("snapshot_id", event.SnapshotID).
		Str("project_id", event.ProjectID).
		Str("date", event.Date).
		Msg("event published")
}

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event domain.SnapshotSavedEvent) error {
	p.logger.Info().
		Str("event_type", domain.EventTypeSnapshotSaved).
		Str("snapshot_id", event.SnapshotID).
		Str("project_id", event.ProjectID).
		Str("date", event.Date).
		Str("remaining_balance", event.RemainingBalance.String()).
		Msg("event published")

	return nil
}

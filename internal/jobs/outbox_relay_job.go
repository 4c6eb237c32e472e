package jobs

import (
	"context"
	"log/slog"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// relayBatchSize caps how many outbox rows one tick drains.
const relayBatchSize = 100

// EventProducer delivers serialized order events to the message broker.
type EventProducer interface {
	Send(ctx context.Context, messages ...ports.OutboxMessage) error
}

// OutboxRelayJob drains unpublished outbox rows to the broker. Runs every
// second; a row is only marked published after the broker accepted it, so
// a crashed tick re-sends rather than loses.
type OutboxRelayJob struct {
	outbox   ports.OutboxRepository
	producer EventProducer
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates a new job relaying outbox rows through the
// given producer.
func NewOutboxRelayJob(outbox ports.OutboxRepository, producer EventProducer, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		outbox:   outbox,
		producer: producer,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.relayBatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayBatch(ctx context.Context) error {
	messages, err := j.outbox.GetNotPublished(ctx, relayBatchSize)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	if err := j.producer.Send(ctx, messages...); err != nil {
		return err
	}

	published := make([]kernel.UUID, 0, len(messages))
	for _, message := range messages {
		published = append(published, message.ID)
	}

	return j.outbox.MarkPublished(ctx, published...)
}

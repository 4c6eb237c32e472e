package ports

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event stored in the same transaction
// as the mutation that produced it. A relay job later delivers unpublished
// messages to the message broker, giving at-least-once delivery downstream
// without coupling the request path to broker availability.
type OutboxMessage struct {
	ID          kernel.UUID
	EventName   string
	OrderID     kernel.UUID
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// OutboxRepository defines the persistence contract for outbox messages.
type OutboxRepository interface {
	// Add stores messages for later relay. Called inside the same
	// transaction as the order mutation.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// GetNotPublished retrieves up to limit unpublished messages, oldest
	// first.
	GetNotPublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the given messages as delivered.
	MarkPublished(ctx context.Context, ids ...kernel.UUID) error
}

package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to live subscribers. Command
// handlers call it strictly after the transaction that applied the change
// has committed, so subscribers never hear about a mutation that failed to
// persist. Publishing to zero subscribers is a silent no-op.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event)
}

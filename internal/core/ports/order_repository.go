package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
)

// OrderFilter narrows and pages order listings. A nil Status matches every
// status. Page is 1-based; Limit caps the page size.
type OrderFilter struct {
	Status *order.Status
	Page   int
	Limit  int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateInStatus persists the aggregate's changes only if the stored
	// row still has expectedStatus. When a concurrent mutation has already
	// moved the order past expectedStatus, the update applies to zero rows
	// and a ConflictError is returned; the aggregate's in-memory changes
	// are discarded by the caller. This is the linearization point for
	// racing transitions on the same order.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// UpdateTracking persists only the live tracking position. Like
	// UpdateInStatus it is guarded by the expected status so a location
	// report cannot land on an order that has since left the active phase.
	UpdateTracking(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// ListByCustomer retrieves the orders owned by the given customer,
	// newest first, narrowed by the filter.
	ListByCustomer(ctx context.Context, customerID kernel.UUID, filter OrderFilter) ([]*order.Order, error)

	// ListByDeliveryPerson retrieves the orders assigned to the given
	// delivery person, newest first, narrowed by the filter.
	ListByDeliveryPerson(ctx context.Context, deliveryPersonID kernel.UUID, filter OrderFilter) ([]*order.Order, error)

	// ListAll retrieves all orders, newest first, narrowed by the filter.
	ListAll(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// CountByStatus returns the number of orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}

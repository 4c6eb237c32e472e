package commands

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start pending with no delivery person and an empty status
// history; admins learn about them through the published CreatedEvent.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.AccessPolicy,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the order creation command. Only customers may place
// orders; the actor becomes the owning customer. The order and its outbox
// record commit together, and the live event is published strictly after
// commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ActionCreate, nil); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID,
		cmd.PickupAddress(),
		cmd.DropAddress(),
		cmd.ItemDescription(),
		cmd.PickupCoords(),
		cmd.DropCoords(),
	)
	if err != nil {
		return nil, err
	}

	event := order.CreatedEvent{
		ID:              aggregate.ID(),
		CustomerID:      aggregate.Customer(),
		PickupAddress:   aggregate.PickupAddress(),
		DropAddress:     aggregate.DropAddress(),
		ItemDescription: aggregate.ItemDescription(),
		CreatedAt:       aggregate.CreatedAt(),
	}
	message, err := outboxMessageFrom(event)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, event)
	return aggregate, nil
}

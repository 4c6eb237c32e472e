package commands

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
)

// CancelOrderCommandHandler withdraws a pending order on behalf of its
// owning customer. Cancelled is terminal: a repeat cancel fails with
// InvalidTransition and never appends a second history entry.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.AccessPolicy,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the cancellation. Ownership is checked against the loaded
// order; a non-owner receives Forbidden without learning whether a pending
// order exists behind the identifier.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.ActionCancel, aggregate); err != nil {
		return nil, err
	}

	expectedStatus := aggregate.Status()
	if err = aggregate.Cancel(cmd.Actor().ID, cmd.Reason()); err != nil {
		return nil, err
	}

	event := order.StatusChangedEvent{
		ID:               aggregate.ID(),
		CustomerID:       aggregate.Customer(),
		DeliveryPersonID: aggregate.DeliveryPerson(),
		OldStatus:        expectedStatus,
		NewStatus:        aggregate.Status(),
	}
	message, err := outboxMessageFrom(event)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().UpdateInStatus(ctx, aggregate, expectedStatus); err != nil {
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

package commands

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler advances an order along the happy path on
// behalf of its assigned delivery person. Delivery completion also credits
// the courier's delivery counters, in the same transaction as the status
// change.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     *services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status advances.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	policy *services.AccessPolicy,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the status advance. The expected-status guard on the
// update serializes racing transitions on the same order: the loser sees a
// ConflictError and may re-fetch and retry.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	if err = h.policy.Authorize(cmd.Actor(), services.ActionAdvanceStatus, aggregate); err != nil {
		return nil, err
	}

	expectedStatus := aggregate.Status()
	switch cmd.NewStatus() {
	case order.StatusPickedUp:
		err = aggregate.MarkPickedUp(cmd.Actor().ID, cmd.Notes())
	case order.StatusDelivered:
		err = aggregate.MarkDelivered(cmd.Actor().ID, cmd.Notes())
	default:
		// unreachable: the command constructor restricts the target
		err = errs.NewValueIsInvalidError("newStatus")
	}
	if err != nil {
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

	if cmd.NewStatus() == order.StatusDelivered {
		if err = h.creditDelivery(ctx, uow, cmd); err != nil {
			return nil, err
		}
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

// creditDelivery bumps the courier's completed-deliveries counters inside
// the transaction that marked the order delivered.
func (h UpdateOrderStatusCommandHandler) creditDelivery(
	ctx context.Context,
	uow UoW,
	cmd UpdateOrderStatusCommand,
) error {
	courier, err := uow.UserRepository().Get(ctx, cmd.Actor().ID)
	if err != nil {
		return err
	}
	if err = courier.RecordCompletedDelivery(); err != nil {
		return err
	}
	return uow.UserRepository().Update(ctx, courier)
}

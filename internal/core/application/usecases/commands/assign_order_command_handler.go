package commands

import (
	"context"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// AssignOrderCommandHandler orchestrates handing a pending order to a
// delivery person. The target must be an active, available delivery person;
// the status-guarded update ensures two admins racing to assign the same
// order produce exactly one winner.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, policy, publisher)
//	cmd, _ := NewAssignOrderCommand(admin, orderID, courierID, "closest to pickup")
//	assigned, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrConflict):
//	    log.Println("another admin got there first")
//	case err != nil:
//	    log.Printf("assignment failed: %v", err)
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     *services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	policy *services.AccessPolicy,
	publisher ports.EventPublisher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the assignment command. Reads the order and the target
// user in one transaction, applies the pending -> assigned transition, and
// persists behind the expected-status guard. When no notes are given the
// history entry records the delivery person's name. The published
// AssignedEvent carries the name for the customer's benefit.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Actor(), services.ActionAssign, nil); err != nil {
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

	deliveryPerson, err := uow.UserRepository().Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return nil, err
	}
	if !deliveryPerson.CanBeAssigned() {
		return nil, errs.NewValueIsInvalidError("delivery person is not available for assignment")
	}

	notes := cmd.Notes()
	if notes == "" {
		notes = "Assigned to " + deliveryPerson.Name()
	}

	expectedStatus := aggregate.Status()
	if err = aggregate.Assign(cmd.DeliveryPersonID(), cmd.Actor().ID, notes); err != nil {
		return nil, err
	}

	event := order.AssignedEvent{
		ID:                 aggregate.ID(),
		CustomerID:         aggregate.Customer(),
		DeliveryPersonID:   cmd.DeliveryPersonID(),
		DeliveryPersonName: deliveryPerson.Name(),
		PickupAddress:      aggregate.PickupAddress(),
		DropAddress:        aggregate.DropAddress(),
		ItemDescription:    aggregate.ItemDescription(),
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

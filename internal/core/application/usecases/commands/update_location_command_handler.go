package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"
)

// UpdateLocationCommandHandler records the courier's live position on an
// active order. Location reports are high-frequency telemetry: they update
// the tracking fields behind the status guard and fan out to live
// subscribers, but are not recorded in the outbox for broker relay.
type UpdateLocationCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     *services.AccessPolicy
	publisher  ports.EventPublisher
}

// NewUpdateLocationCommandHandler creates a handler for location reports.
func NewUpdateLocationCommandHandler(
	uowFactory OrderUoWFactory,
	policy *services.AccessPolicy,
	publisher ports.EventPublisher,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
	}
}

// Handle processes the location report. The status guard on the tracking
// update ensures a report racing with a delivery completion cannot land on
// an order that has already left the active phase.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(cmd.Actor(), services.ActionUpdateLocation, aggregate); err != nil {
		return err
	}

	expectedStatus := aggregate.Status()
	if err = aggregate.UpdateLocation(cmd.Position()); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateTracking(ctx, aggregate, expectedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.LocationUpdatedEvent{
		ID:               aggregate.ID(),
		CustomerID:       aggregate.Customer(),
		DeliveryPersonID: cmd.Actor().ID,
		Position:         cmd.Position(),
		Timestamp:        time.Now().UTC(),
	})
	return nil
}

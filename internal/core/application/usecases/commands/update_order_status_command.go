package commands

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a delivery person's request to advance
// an order along the happy path. Only picked-up and delivered may be
// requested through this command; assignment and cancellation have their own
// commands with different actors.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor     services.Actor
	orderID   kernel.UUID
	newStatus order.Status
	notes     string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to advance an order's status.
func NewUpdateOrderStatusCommand(
	actor services.Actor,
	orderID kernel.UUID,
	newStatus order.Status,
	notes string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// Actor returns the delivery person requesting the advance.
func (c UpdateOrderStatusCommand) Actor() services.Actor { return c.actor }

// OrderID returns the identifier of the order to advance.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// NewStatus returns the requested target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status { return c.newStatus }

// Notes returns the optional notes for the history entry.
func (c UpdateOrderStatusCommand) Notes() string { return c.notes }

func (c *UpdateOrderStatusCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	if err := actor.Role.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if newStatus != order.StatusPickedUp && newStatus != order.StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause("newStatus",
			fmt.Errorf("%q cannot be requested through a status update", newStatus))
	}

	c.newStatus = newStatus
	return nil
}

package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents an admin's request to hand a pending order
// to a specific delivery person. Notes are optional and recorded in the
// order's status history.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	actor            services.Actor
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	notes            string

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order.
func NewAssignOrderCommand(
	actor services.Actor,
	orderID kernel.UUID,
	deliveryPersonID kernel.UUID,
	notes string,
) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// Actor returns the admin performing the assignment.
func (c AssignOrderCommand) Actor() services.Actor { return c.actor }

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }

// DeliveryPersonID returns the identifier of the target delivery person.
func (c AssignOrderCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }

// Notes returns the optional assignment notes.
func (c AssignOrderCommand) Notes() string { return c.notes }

func (c *AssignOrderCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	if err := actor.Role.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setDeliveryPersonID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryPersonID = id
	return nil
}

package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a delivery person reporting their current
// position for an active order.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	actor    services.Actor
	orderID  kernel.UUID
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command to report a courier position.
func NewUpdateLocationCommand(
	actor services.Actor,
	orderID kernel.UUID,
	position kernel.GeoPoint,
) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setPosition(position),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// Actor returns the delivery person reporting the position.
func (c UpdateLocationCommand) Actor() services.Actor { return c.actor }

// OrderID returns the identifier of the order being tracked.
func (c UpdateLocationCommand) OrderID() kernel.UUID { return c.orderID }

// Position returns the reported position.
func (c UpdateLocationCommand) Position() kernel.GeoPoint { return c.position }

func (c *UpdateLocationCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	if err := actor.Role.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLocationCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}

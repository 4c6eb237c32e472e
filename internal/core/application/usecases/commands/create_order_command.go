package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to place a new delivery
// order. Coordinates are optional; address-only orders are valid.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(),
//	    "123 Main St", "456 Oak Ave", "Box", nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           services.Actor
	orderID         kernel.UUID
	pickupAddress   string
	dropAddress     string
	itemDescription string
	pickupCoords    *kernel.GeoPoint
	dropCoords      *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order on behalf of
// the actor. Validates identifiers and required fields; the deeper field
// rules (trimming, length bounds) live in the order aggregate.
func NewCreateOrderCommand(
	actor services.Actor,
	orderID kernel.UUID,
	pickupAddress string,
	dropAddress string,
	itemDescription string,
	pickupCoords *kernel.GeoPoint,
	dropCoords *kernel.GeoPoint,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setAddresses(pickupAddress, dropAddress, itemDescription),
		cmd.setCoords(pickupCoords, dropCoords),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Actor returns the authenticated identity placing the order.
func (c CreateOrderCommand) Actor() services.Actor { return c.actor }

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// PickupAddress returns the pickup address.
func (c CreateOrderCommand) PickupAddress() string { return c.pickupAddress }

// DropAddress returns the drop-off address.
func (c CreateOrderCommand) DropAddress() string { return c.dropAddress }

// ItemDescription returns the description of the item to transport.
func (c CreateOrderCommand) ItemDescription() string { return c.itemDescription }

// PickupCoords returns the optional pickup coordinates.
func (c CreateOrderCommand) PickupCoords() *kernel.GeoPoint { return c.pickupCoords }

// DropCoords returns the optional drop-off coordinates.
func (c CreateOrderCommand) DropCoords() *kernel.GeoPoint { return c.dropCoords }

func (c *CreateOrderCommand) setActor(actor services.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	if err := actor.Role.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, drop, description string) error {
	if pickup == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	if drop == "" {
		return errs.NewValueIsRequiredError("dropAddress")
	}
	if description == "" {
		return errs.NewValueIsRequiredError("itemDescription")
	}

	c.pickupAddress = pickup
	c.dropAddress = drop
	c.itemDescription = description
	return nil
}

func (c *CreateOrderCommand) setCoords(pickup, drop *kernel.GeoPoint) error {
	if pickup != nil {
		if err := pickup.Validate(); err != nil {
			return err
		}
	}
	if drop != nil {
		if err := drop.Validate(); err != nil {
			return err
		}
	}

	c.pickupCoords = pickup
	c.dropCoords = drop
	return nil
}

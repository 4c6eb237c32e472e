package order

import (
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
)

// Event is a domain event raised by a successful order mutation.
// Events are published strictly after the mutation is durably applied.
type Event interface {
	// EventName returns the stable name of the event kind.
	EventName() string
	// OrderID returns the identifier of the order the event concerns.
	OrderID() kernel.UUID
}

// CreatedEvent is raised when a customer creates a new order.
type CreatedEvent struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	PickupAddress   string
	DropAddress     string
	ItemDescription string
	CreatedAt       time.Time
}

// EventName implements Event.
func (e CreatedEvent) EventName() string { return "order.created" }

// OrderID implements Event.
func (e CreatedEvent) OrderID() kernel.UUID { return e.ID }

// AssignedEvent is raised when an admin assigns an order to a delivery
// person.
type AssignedEvent struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	DeliveryPersonID   kernel.UUID
	DeliveryPersonName string
	PickupAddress      string
	DropAddress        string
	ItemDescription    string
}

// EventName implements Event.
func (e AssignedEvent) EventName() string { return "order.assigned" }

// OrderID implements Event.
func (e AssignedEvent) OrderID() kernel.UUID { return e.ID }

// StatusChangedEvent is raised on every status transition, carrying both
// sides of the edge.
type StatusChangedEvent struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	DeliveryPersonID *kernel.UUID
	OldStatus        Status
	NewStatus        Status
}

// EventName implements Event.
func (e StatusChangedEvent) EventName() string { return "order.status_changed" }

// OrderID implements Event.
func (e StatusChangedEvent) OrderID() kernel.UUID { return e.ID }

// LocationUpdatedEvent is raised when the assigned delivery person reports
// a new position for an active order.
type LocationUpdatedEvent struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	DeliveryPersonID kernel.UUID
	Position         kernel.GeoPoint
	Timestamp        time.Time
}

// EventName implements Event.
func (e LocationUpdatedEvent) EventName() string { return "order.location_updated" }

// OrderID implements Event.
func (e LocationUpdatedEvent) OrderID() kernel.UUID { return e.ID }

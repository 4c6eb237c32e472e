package realtime

import (
	"context"
	"log/slog"
	"time"

	"deliveryhub/internal/core/domain/model/order"
)

// Client-facing event names. They differ from the durable outbox names
// because the browser protocol predates the broker.
const (
	eventNewOrder          = "new_order"
	eventOrderAssigned     = "order_assigned"
	eventNewAssignment     = "new_assignment"
	eventOrderStatusUpdate = "order_status_update"
	eventDeliveryLocation  = "delivery_location"
)

var statusMessages = map[order.Status]string{
	order.StatusAssigned:  "Your order has been assigned to a delivery person",
	order.StatusPickedUp:  "Your order has been picked up and is on the way",
	order.StatusDelivered: "Your order has been delivered successfully",
	order.StatusCancelled: "Your order has been cancelled",
}

// Dispatcher fans committed order events out to the interested live
// topics. It implements ports.EventPublisher and must only be handed
// events whose mutation has already been persisted.
type Dispatcher struct {
	hub    *Hub
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher publishing through the given hub.
func NewDispatcher(hub *Hub, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		hub:    hub,
		logger: logger.With("component", "realtime.dispatcher"),
	}
}

// Publish routes each event to its audience. Creation goes to admins,
// assignment to the customer and the assigned courier, status changes and
// location reports to the customer and admins.
func (d *Dispatcher) Publish(ctx context.Context, events ...order.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case order.CreatedEvent:
			d.dispatchCreated(ctx, e)
		case order.AssignedEvent:
			d.dispatchAssigned(ctx, e)
		case order.StatusChangedEvent:
			d.dispatchStatusChanged(ctx, e)
		case order.LocationUpdatedEvent:
			d.dispatchLocationUpdated(ctx, e)
		default:
			d.logger.Warn("unroutable event", "eventName", event.EventName())
		}
	}
}

func (d *Dispatcher) dispatchCreated(ctx context.Context, e order.CreatedEvent) {
	d.hub.Publish(ctx, AdminOrdersTopic, eventNewOrder, map[string]any{
		"orderId":         e.ID.String(),
		"customerId":      e.CustomerID.String(),
		"pickupAddress":   e.PickupAddress,
		"dropAddress":     e.DropAddress,
		"itemDescription": e.ItemDescription,
		"timestamp":       e.CreatedAt.Format(time.RFC3339),
	})
}

func (d *Dispatcher) dispatchAssigned(ctx context.Context, e order.AssignedEvent) {
	d.hub.Publish(ctx, CustomerTopic(e.CustomerID), eventOrderAssigned, map[string]any{
		"orderId":            e.ID.String(),
		"deliveryPersonName": e.DeliveryPersonName,
		"message":            "Your order has been assigned to " + e.DeliveryPersonName,
	})

	d.hub.Publish(ctx, DeliveryTopic(e.DeliveryPersonID), eventNewAssignment, map[string]any{
		"orderId":         e.ID.String(),
		"pickupAddress":   e.PickupAddress,
		"dropAddress":     e.DropAddress,
		"itemDescription": e.ItemDescription,
		"message":         "You have a new delivery assignment",
	})
}

func (d *Dispatcher) dispatchStatusChanged(ctx context.Context, e order.StatusChangedEvent) {
	message, ok := statusMessages[e.NewStatus]
	if !ok {
		message = "Order status updated to " + e.NewStatus.String()
	}

	d.hub.Publish(ctx, CustomerTopic(e.CustomerID), eventOrderStatusUpdate, map[string]any{
		"orderId":   e.ID.String(),
		"oldStatus": e.OldStatus.String(),
		"newStatus": e.NewStatus.String(),
		"message":   message,
	})

	adminPayload := map[string]any{
		"orderId":    e.ID.String(),
		"customerId": e.CustomerID.String(),
		"oldStatus":  e.OldStatus.String(),
		"newStatus":  e.NewStatus.String(),
	}
	if e.DeliveryPersonID != nil {
		adminPayload["deliveryPersonId"] = e.DeliveryPersonID.String()
	}
	d.hub.Publish(ctx, AdminOrdersTopic, eventOrderStatusUpdate, adminPayload)
}

func (d *Dispatcher) dispatchLocationUpdated(ctx context.Context, e order.LocationUpdatedEvent) {
	timestamp := e.Timestamp.Format(time.RFC3339)

	d.hub.Publish(ctx, CustomerTopic(e.CustomerID), eventDeliveryLocation, map[string]any{
		"orderId":   e.ID.String(),
		"latitude":  e.Position.Lat(),
		"longitude": e.Position.Lng(),
		"timestamp": timestamp,
	})

	d.hub.Publish(ctx, AdminOrdersTopic, eventDeliveryLocation, map[string]any{
		"orderId":          e.ID.String(),
		"customerId":       e.CustomerID.String(),
		"deliveryPersonId": e.DeliveryPersonID.String(),
		"latitude":         e.Position.Lat(),
		"longitude":        e.Position.Lng(),
		"timestamp":        timestamp,
	})
}

package commands

import (
	"encoding/json"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
)

// outboxMessageFrom serializes a domain event into an outbox row so the
// broker relay can deliver it after commit. Identifiers are stored in their
// canonical string form.
func outboxMessageFrom(event order.Event) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(eventPayload(event))
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		EventName: event.EventName(),
		OrderID:   event.OrderID(),
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func eventPayload(event order.Event) map[string]any {
	switch e := event.(type) {
	case order.CreatedEvent:
		return map[string]any{
			"orderId":         e.ID.String(),
			"customerId":      e.CustomerID.String(),
			"pickupAddress":   e.PickupAddress,
			"dropAddress":     e.DropAddress,
			"itemDescription": e.ItemDescription,
			"createdAt":       e.CreatedAt.Format(time.RFC3339Nano),
		}
	case order.AssignedEvent:
		return map[string]any{
			"orderId":            e.ID.String(),
			"customerId":         e.CustomerID.String(),
			"deliveryPersonId":   e.DeliveryPersonID.String(),
			"deliveryPersonName": e.DeliveryPersonName,
		}
	case order.StatusChangedEvent:
		payload := map[string]any{
			"orderId":    e.ID.String(),
			"customerId": e.CustomerID.String(),
			"oldStatus":  e.OldStatus.String(),
			"newStatus":  e.NewStatus.String(),
		}
		if e.DeliveryPersonID != nil {
			payload["deliveryPersonId"] = e.DeliveryPersonID.String()
		}
		return payload
	case order.LocationUpdatedEvent:
		return map[string]any{
			"orderId":          e.ID.String(),
			"customerId":       e.CustomerID.String(),
			"deliveryPersonId": e.DeliveryPersonID.String(),
			"lat":              e.Position.Lat(),
			"lng":              e.Position.Lng(),
			"timestamp":        e.Timestamp.Format(time.RFC3339Nano),
		}
	default:
		return map[string]any{"orderId": event.OrderID().String()}
	}
}

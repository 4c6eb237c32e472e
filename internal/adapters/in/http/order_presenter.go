package http

import (
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/order"
)

// presentOrder converts a freshly mutated aggregate into the same read
// model shape the query handlers return, so command and query responses
// look identical to clients.
func presentOrder(aggregate *order.Order) queries.OrderResponse {
	history := make([]queries.HistoryEntryResponse, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, queries.HistoryEntryResponse{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			UpdatedBy: entry.UpdatedBy.String(),
			Notes:     entry.Notes,
		})
	}

	resp := queries.OrderResponse{
		ID:                    aggregate.ID().String(),
		CustomerID:            aggregate.Customer().String(),
		PickupAddress:         aggregate.PickupAddress(),
		DropAddress:           aggregate.DropAddress(),
		ItemDescription:       aggregate.ItemDescription(),
		Status:                aggregate.Status().String(),
		StatusHistory:         history,
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualPickupTime:      aggregate.ActualPickupTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}

	if deliveryPerson := aggregate.DeliveryPerson(); deliveryPerson != nil {
		id := deliveryPerson.String()
		resp.DeliveryPersonID = &id
	}
	if coords := aggregate.PickupCoords(); coords != nil {
		resp.PickupCoords = &queries.CoordsResponse{Lat: coords.Lat(), Lng: coords.Lng()}
	}
	if coords := aggregate.DropCoords(); coords != nil {
		resp.DropCoords = &queries.CoordsResponse{Lat: coords.Lat(), Lng: coords.Lng()}
	}

	tracking := aggregate.Tracking()
	if tracking.CurrentLocation != nil {
		resp.CurrentLocation = &queries.CoordsResponse{
			Lat: tracking.CurrentLocation.Lat(),
			Lng: tracking.CurrentLocation.Lng(),
		}
	}
	resp.LastLocationUpdate = tracking.LastLocationUpdate

	return resp
}

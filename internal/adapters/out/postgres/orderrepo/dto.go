// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The status history is a JSONB document: it is append-only and
// always read whole, so there is nothing to gain from a join table.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`

	PickupAddress   string `gorm:"type:varchar(500)"`
	DropAddress     string `gorm:"type:varchar(500)"`
	ItemDescription string

	PickupLat *float64
	PickupLng *float64
	DropLat   *float64
	DropLng   *float64

	Status  string `gorm:"type:varchar(16);index"`
	History []byte `gorm:"type:jsonb"`

	CurrentLat         *float64
	CurrentLng         *float64
	LastLocationUpdate *time.Time

	EstimatedDeliveryTime *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// historyEntryDTO is the JSON shape of one status transition inside the
// history document. Field names are shared with the read models in the
// queries package.
type historyEntryDTO struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	var deliveryPersonID *uuid.UUID
	if id := aggregate.DeliveryPerson(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	history := aggregate.History()
	entries := make([]historyEntryDTO, 0, len(history))
	for _, entry := range history {
		entries = append(entries, historyEntryDTO{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			UpdatedBy: entry.UpdatedBy.String(),
			Notes:     entry.Notes,
		})
	}
	historyJSON, err := json.Marshal(entries)
	if err != nil {
		return OrderDTO{}, err
	}

	dto := OrderDTO{
		ID:                    aggregate.ID().Bytes(),
		CustomerID:            aggregate.Customer().Bytes(),
		DeliveryPersonID:      deliveryPersonID,
		PickupAddress:         aggregate.PickupAddress(),
		DropAddress:           aggregate.DropAddress(),
		ItemDescription:       aggregate.ItemDescription(),
		Status:                aggregate.Status().String(),
		History:               historyJSON,
		LastLocationUpdate:    aggregate.Tracking().LastLocationUpdate,
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualPickupTime:      aggregate.ActualPickupTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}

	if coords := aggregate.PickupCoords(); coords != nil {
		lat, lng := coords.Lat(), coords.Lng()
		dto.PickupLat, dto.PickupLng = &lat, &lng
	}
	if coords := aggregate.DropCoords(); coords != nil {
		lat, lng := coords.Lat(), coords.Lng()
		dto.DropLat, dto.DropLng = &lat, &lng
	}
	if position := aggregate.Tracking().CurrentLocation; position != nil {
		lat, lng := position.Lat(), position.Lng()
		dto.CurrentLat, dto.CurrentLng = &lat, &lng
	}

	return dto, nil
}

// toDomain converts a database row back into an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryPersonID *kernel.UUID
	if dto.DeliveryPersonID != nil {
		dpID, dpErr := kernel.UUIDFromBytes((*dto.DeliveryPersonID)[:])
		if dpErr != nil {
			return nil, dpErr
		}
		deliveryPersonID = &dpID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	pickupCoords, err := coordsToDomain(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	dropCoords, err := coordsToDomain(dto.DropLat, dto.DropLng)
	if err != nil {
		return nil, err
	}
	currentLocation, err := coordsToDomain(dto.CurrentLat, dto.CurrentLng)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		deliveryPersonID,
		dto.PickupAddress,
		dto.DropAddress,
		dto.ItemDescription,
		pickupCoords,
		dropCoords,
		status,
		history,
		order.Tracking{
			CurrentLocation:    currentLocation,
			LastLocationUpdate: dto.LastLocationUpdate,
		},
		dto.EstimatedDeliveryTime,
		dto.ActualPickupTime,
		dto.ActualDeliveryTime,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func historyToDomain(raw []byte) ([]order.HistoryEntry, error) {
	if len(raw) == 0 {
		return []order.HistoryEntry{}, nil
	}

	var entries []historyEntryDTO
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		status, err := order.ParseStatus(entry.Status)
		if err != nil {
			return nil, err
		}
		updatedBy, err := kernel.UUIDFromString(entry.UpdatedBy)
		if err != nil {
			return nil, err
		}
		history = append(history, order.HistoryEntry{
			Status:    status,
			Timestamp: entry.Timestamp,
			UpdatedBy: updatedBy,
			Notes:     entry.Notes,
		})
	}

	return history, nil
}

func coordsToDomain(lat, lng *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

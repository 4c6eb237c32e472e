// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries go straight to the database and return read models; they never
// load aggregates or mutate anything.
package queries

import (
	"encoding/json"
	"time"
)

// OrderResponse is the read model of a single order.
type OrderResponse struct {
	ID                    string                 `json:"id"`
	CustomerID            string                 `json:"customerId"`
	DeliveryPersonID      *string                `json:"deliveryPersonId,omitempty"`
	PickupAddress         string                 `json:"pickupAddress"`
	DropAddress           string                 `json:"dropAddress"`
	ItemDescription       string                 `json:"itemDescription"`
	PickupCoords          *CoordsResponse        `json:"pickupCoords,omitempty"`
	DropCoords            *CoordsResponse        `json:"dropCoords,omitempty"`
	Status                string                 `json:"status"`
	StatusHistory         []HistoryEntryResponse `json:"statusHistory"`
	CurrentLocation       *CoordsResponse        `json:"currentLocation,omitempty"`
	LastLocationUpdate    *time.Time             `json:"lastLocationUpdate,omitempty"`
	EstimatedDeliveryTime *time.Time             `json:"estimatedDeliveryTime,omitempty"`
	ActualPickupTime      *time.Time             `json:"actualPickupTime,omitempty"`
	ActualDeliveryTime    *time.Time             `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

// CoordsResponse is a latitude/longitude pair in the read model.
type CoordsResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HistoryEntryResponse is one status transition in the read model.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Notes     string    `json:"notes,omitempty"`
}

// orderRow mirrors the orders table for gorm scanning.
type orderRow struct {
	ID                    string     `gorm:"column:id"`
	CustomerID            string     `gorm:"column:customer_id"`
	DeliveryPersonID      *string    `gorm:"column:delivery_person_id"`
	PickupAddress         string     `gorm:"column:pickup_address"`
	DropAddress           string     `gorm:"column:drop_address"`
	ItemDescription       string     `gorm:"column:item_description"`
	PickupLat             *float64   `gorm:"column:pickup_lat"`
	PickupLng             *float64   `gorm:"column:pickup_lng"`
	DropLat               *float64   `gorm:"column:drop_lat"`
	DropLng               *float64   `gorm:"column:drop_lng"`
	Status                string     `gorm:"column:status"`
	History               []byte     `gorm:"column:history"`
	CurrentLat            *float64   `gorm:"column:current_lat"`
	CurrentLng            *float64   `gorm:"column:current_lng"`
	LastLocationUpdate    *time.Time `gorm:"column:last_location_update"`
	EstimatedDeliveryTime *time.Time `gorm:"column:estimated_delivery_time"`
	ActualPickupTime      *time.Time `gorm:"column:actual_pickup_time"`
	ActualDeliveryTime    *time.Time `gorm:"column:actual_delivery_time"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at"`
}

func (r orderRow) toResponse() (OrderResponse, error) {
	history := make([]HistoryEntryResponse, 0)
	if len(r.History) > 0 {
		if err := json.Unmarshal(r.History, &history); err != nil {
			return OrderResponse{}, err
		}
	}

	resp := OrderResponse{
		ID:                    r.ID,
		CustomerID:            r.CustomerID,
		DeliveryPersonID:      r.DeliveryPersonID,
		PickupAddress:         r.PickupAddress,
		DropAddress:           r.DropAddress,
		ItemDescription:       r.ItemDescription,
		Status:                r.Status,
		StatusHistory:         history,
		LastLocationUpdate:    r.LastLocationUpdate,
		EstimatedDeliveryTime: r.EstimatedDeliveryTime,
		ActualPickupTime:      r.ActualPickupTime,
		ActualDeliveryTime:    r.ActualDeliveryTime,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
	if r.PickupLat != nil && r.PickupLng != nil {
		resp.PickupCoords = &CoordsResponse{Lat: *r.PickupLat, Lng: *r.PickupLng}
	}
	if r.DropLat != nil && r.DropLng != nil {
		resp.DropCoords = &CoordsResponse{Lat: *r.DropLat, Lng: *r.DropLng}
	}
	if r.CurrentLat != nil && r.CurrentLng != nil {
		resp.CurrentLocation = &CoordsResponse{Lat: *r.CurrentLat, Lng: *r.CurrentLng}
	}
	return resp, nil
}

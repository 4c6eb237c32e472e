package order

import (
	"errors"
	"strings"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder. This ensures all orders are
// properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

const maxAddressLength = 500

// HistoryEntry records one applied status transition. Entries are
// append-only: once written they are never mutated or removed.
type HistoryEntry struct {
	Status    Status
	Timestamp time.Time
	UpdatedBy kernel.UUID
	Notes     string
}

// Tracking carries the live position reported by the assigned delivery
// person. It is only written while the order status is active
// (assigned or picked-up).
type Tracking struct {
	CurrentLocation    *kernel.GeoPoint
	LastLocationUpdate *time.Time
}

// Order is the aggregate root of the delivery lifecycle. It owns the status
// state machine, the append-only status history, and the live tracking
// position.
//
// Invariants:
//   - Status only moves along the edges defined by Status.TransitionTo
//   - DeliveryPerson is nil exactly while the status is pending, is set
//     once on assignment, and never reverts to nil
//   - Every successful transition appends exactly one history entry
//   - Tracking is writable only while the status is active
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	deliveryPersonID *kernel.UUID

	pickupAddress   string
	dropAddress     string
	itemDescription string
	pickupCoords    *kernel.GeoPoint
	dropCoords      *kernel.GeoPoint

	status  Status
	history []HistoryEntry

	tracking              Tracking
	estimatedDeliveryTime *time.Time
	actualPickupTime      *time.Time
	actualDeliveryTime    *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a pending order for the given customer. Pickup address,
// drop address, and item description are required and trimmed; coordinates
// are optional (address-only orders are valid). When both coordinate pairs
// are present the delivery estimate (30 min + 2 min/km) is computed.
//
// The new order has no delivery person and an empty status history: history
// entries record transitions, and creation is not a transition.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickupAddress string,
	dropAddress string,
	itemDescription string,
	pickupCoords *kernel.GeoPoint,
	dropCoords *kernel.GeoPoint,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	pickupAddress = strings.TrimSpace(pickupAddress)
	dropAddress = strings.TrimSpace(dropAddress)
	itemDescription = strings.TrimSpace(itemDescription)

	if pickupAddress == "" {
		return nil, errs.NewValueIsRequiredError("pickupAddress")
	}
	if dropAddress == "" {
		return nil, errs.NewValueIsRequiredError("dropAddress")
	}
	if itemDescription == "" {
		return nil, errs.NewValueIsRequiredError("itemDescription")
	}
	if len(pickupAddress) > maxAddressLength {
		return nil, errs.NewValueIsOutOfRangeError("pickupAddress length", len(pickupAddress), 1, maxAddressLength)
	}
	if len(dropAddress) > maxAddressLength {
		return nil, errs.NewValueIsOutOfRangeError("dropAddress length", len(dropAddress), 1, maxAddressLength)
	}
	if pickupCoords != nil {
		if err := pickupCoords.Validate(); err != nil {
			return nil, err
		}
	}
	if dropCoords != nil {
		if err := dropCoords.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	o := &Order{
		id:              id,
		customerID:      customerID,
		pickupAddress:   pickupAddress,
		dropAddress:     dropAddress,
		itemDescription: itemDescription,
		pickupCoords:    pickupCoords,
		dropCoords:      dropCoords,
		status:          StatusPending,
		history:         []HistoryEntry{},
		createdAt:       now,
		updatedAt:       now,
		isConstructed:   true,
	}

	if pickupCoords != nil && dropCoords != nil {
		eta := now.Add(kernel.EstimateDeliveryDuration(*pickupCoords, *dropCoords))
		o.estimatedDeliveryTime = &eta
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. It trusts stored
// data except for identifier and status validity. Used exclusively by
// repository adapters.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryPersonID *kernel.UUID,
	pickupAddress string,
	dropAddress string,
	itemDescription string,
	pickupCoords *kernel.GeoPoint,
	dropCoords *kernel.GeoPoint,
	status Status,
	history []HistoryEntry,
	tracking Tracking,
	estimatedDeliveryTime *time.Time,
	actualPickupTime *time.Time,
	actualDeliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:                    id,
		customerID:            customerID,
		deliveryPersonID:      deliveryPersonID,
		pickupAddress:         pickupAddress,
		dropAddress:           dropAddress,
		itemDescription:       itemDescription,
		pickupCoords:          pickupCoords,
		dropCoords:            dropCoords,
		status:                status,
		history:               history,
		tracking:              tracking,
		estimatedDeliveryTime: estimatedDeliveryTime,
		actualPickupTime:      actualPickupTime,
		actualDeliveryTime:    actualDeliveryTime,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Customer returns the owning customer's identifier.
func (o *Order) Customer() kernel.UUID { return o.customerID }

// DeliveryPerson returns the assigned delivery person's identifier, or nil
// while the order is pending.
func (o *Order) DeliveryPerson() *kernel.UUID { return o.deliveryPersonID }

// PickupAddress returns the pickup address.
func (o *Order) PickupAddress() string { return o.pickupAddress }

// DropAddress returns the drop-off address.
func (o *Order) DropAddress() string { return o.dropAddress }

// ItemDescription returns the description of the transported item.
func (o *Order) ItemDescription() string { return o.itemDescription }

// PickupCoords returns the optional pickup coordinates.
func (o *Order) PickupCoords() *kernel.GeoPoint { return o.pickupCoords }

// DropCoords returns the optional drop-off coordinates.
func (o *Order) DropCoords() *kernel.GeoPoint { return o.dropCoords }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// History returns a copy of the status history so callers cannot mutate
// prior entries.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Tracking returns the live tracking state.
func (o *Order) Tracking() Tracking { return o.tracking }

// EstimatedDeliveryTime returns the creation-time delivery estimate, if any.
func (o *Order) EstimatedDeliveryTime() *time.Time { return o.estimatedDeliveryTime }

// ActualPickupTime returns the time the order was picked up, if it was.
func (o *Order) ActualPickupTime() *time.Time { return o.actualPickupTime }

// ActualDeliveryTime returns the time the order was delivered, if it was.
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Assign hands the order to a delivery person and moves it to assigned.
//
// Business rules enforced here:
//   - The edge pending -> assigned must exist from the current status
//   - The delivery person identifier must be valid
//   - A delivery person may be set at most once per order lifetime
//
// The caller (command handler) is responsible for checking that the target
// user is an active, available delivery person and that the actor is an
// admin; those facts live outside the aggregate.
func (o *Order) Assign(deliveryPersonID kernel.UUID, assignedBy kernel.UUID, notes string) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}
	if o.deliveryPersonID != nil {
		return errs.NewInvalidTransitionError(o.status.String(), StatusAssigned.String())
	}

	newStatus, err := o.status.TransitionTo(StatusAssigned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryPersonID = &deliveryPersonID
	o.appendHistory(newStatus, assignedBy, notes)
	return nil
}

// MarkPickedUp moves the order to picked-up and stamps the actual pickup
// time. Only valid from assigned.
func (o *Order) MarkPickedUp(updatedBy kernel.UUID, notes string) error {
	newStatus, err := o.status.TransitionTo(StatusPickedUp)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.actualPickupTime = &now
	o.appendHistory(newStatus, updatedBy, notes)
	return nil
}

// MarkDelivered moves the order to delivered and stamps the actual delivery
// time. Only valid from picked-up. Delivered is terminal.
func (o *Order) MarkDelivered(updatedBy kernel.UUID, notes string) error {
	newStatus, err := o.status.TransitionTo(StatusDelivered)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.actualDeliveryTime = &now
	o.appendHistory(newStatus, updatedBy, notes)
	return nil
}

// Cancel withdraws a pending order. Only valid from pending, which is also
// the only path that ends an order without an assignment. Cancelled is
// terminal; a second cancel fails with InvalidTransition and never
// double-appends history.
func (o *Order) Cancel(cancelledBy kernel.UUID, reason string) error {
	newStatus, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendHistory(newStatus, cancelledBy, reason)
	return nil
}

// UpdateLocation records the delivery person's current position. Only valid
// while the status is active (assigned or picked-up) and only for orders
// that have a delivery person; the caller verifies the reporter is that
// delivery person.
func (o *Order) UpdateLocation(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	if o.deliveryPersonID == nil || !o.status.IsActive() {
		return errs.NewValueIsInvalidError("location updates are only accepted for active deliveries")
	}

	now := time.Now().UTC()
	o.tracking.CurrentLocation = &position
	o.tracking.LastLocationUpdate = &now
	o.updatedAt = now
	return nil
}

// appendHistory adds exactly one entry for an applied transition and bumps
// the update timestamp.
func (o *Order) appendHistory(status Status, updatedBy kernel.UUID, notes string) {
	now := time.Now().UTC()
	o.history = append(o.history, HistoryEntry{
		Status:    status,
		Timestamp: now,
		UpdatedBy: updatedBy,
		Notes:     notes,
	})
	o.updatedAt = now
}

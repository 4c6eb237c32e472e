package user

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// DeliveryStats aggregates a delivery person's workload counters.
// CompletedDeliveries counts delivered orders; TotalDeliveries is kept at
// least as large as CompletedDeliveries. Rating and IsAvailable drive
// assignment eligibility.
type DeliveryStats struct {
	TotalDeliveries     int
	CompletedDeliveries int
	Rating              float64
	IsAvailable         bool
}

// User represents an authenticated identity referenced by orders.
//
// Invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - Role is immutable after creation
//   - Delivery statistics only apply to users with RoleDelivery
//   - Can only be created through NewUser or RestoreUser
type User struct {
	id       kernel.UUID
	name     string
	role     Role
	isActive bool
	stats    DeliveryStats

	isConstructed bool
}

// NewUser creates an active User with the given identity and role.
// Delivery personnel start available with the default rating.
func NewUser(id kernel.UUID, name string, role Role) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	u := &User{
		id:            id,
		name:          name,
		role:          role,
		isActive:      true,
		isConstructed: true,
	}
	if role == RoleDelivery {
		u.stats = DeliveryStats{Rating: 5.0, IsAvailable: true}
	}
	return u, nil
}

// RestoreUser reconstructs a User from persistence without re-deriving
// defaults. Used exclusively by repository adapters.
func RestoreUser(id kernel.UUID, name string, role Role, isActive bool, stats DeliveryStats) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	return &User{
		id:            id,
		name:          name,
		role:          role,
		isActive:      isActive,
		stats:         stats,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Role returns the user's immutable role.
func (u *User) Role() Role { return u.role }

// IsActive reports whether the account is active.
func (u *User) IsActive() bool { return u.isActive }

// Stats returns the delivery statistics. Meaningful only for RoleDelivery.
func (u *User) Stats() DeliveryStats { return u.stats }

// CanBeAssigned reports whether this user may receive a new delivery
// assignment: an active, available delivery person.
func (u *User) CanBeAssigned() bool {
	return u.role == RoleDelivery && u.isActive && u.stats.IsAvailable
}

// RecordCompletedDelivery increments the completed-deliveries counter and
// raises the total-deliveries counter to at least that value. It is invoked
// when an order assigned to this user transitions to delivered.
//
// Returns an error if the user is not a delivery person.
func (u *User) RecordCompletedDelivery() error {
	if u.role != RoleDelivery {
		return errs.NewValueIsInvalidError("only delivery personnel accumulate delivery stats")
	}

	u.stats.CompletedDeliveries++
	if u.stats.TotalDeliveries < u.stats.CompletedDeliveries {
		u.stats.TotalDeliveries = u.stats.CompletedDeliveries
	}
	return nil
}

// SetAvailability toggles whether a delivery person accepts new assignments.
func (u *User) SetAvailability(available bool) error {
	if u.role != RoleDelivery {
		return errs.NewValueIsInvalidError("only delivery personnel have availability")
	}
	u.stats.IsAvailable = available
	return nil
}

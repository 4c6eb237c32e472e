package user

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Role identifies what an authenticated actor is allowed to do.
// It is a tagged enum rather than a raw string so the authorization policy
// can match exhaustively; string comparisons exist only at parsing
// boundaries (credentials, persistence).
//
// Roles are immutable after user creation.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer places orders and may cancel them while pending.
	RoleCustomer

	// RoleDelivery carries assigned orders, advances their status, and
	// reports location while a delivery is active.
	RoleDelivery

	// RoleAdmin assigns pending orders to delivery personnel and sees
	// every order.
	RoleAdmin
)

// roleStrings maps every Role value to its wire representation.
func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

// validRoleStrings maps only the valid roles, for validation and parsing.
func validRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleDelivery: "delivery",
		RoleAdmin:    "admin",
	}
}

// ParseRole converts the wire form ("customer", "delivery", "admin") into a
// Role. Unknown input yields a ValueIsInvalidError.
func ParseRole(s string) (Role, error) {
	for role, str := range validRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the valid values.
// RoleUnknown and out-of-range values are invalid.
func (r Role) Validate() error {
	if _, ok := validRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire form of the role, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

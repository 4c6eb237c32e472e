package order

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> Delivered
//	   │
//	   └──> Cancelled
//
// No other edges exist: there are no forward skips, no backward moves, and
// Delivered and Cancelled are terminal. Status is a value object that
// validates transitions and provides string representations for persistence
// and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a newly created order.
	// Pending orders have no delivery person and wait for admin assignment.
	StatusPending

	// StatusAssigned indicates an admin handed the order to a delivery
	// person. The delivery person is fixed from this point on.
	StatusAssigned

	// StatusPickedUp indicates the assigned delivery person collected the
	// item and is underway.
	StatusPickedUp

	// StatusDelivered indicates successful completion. Terminal.
	StatusDelivered

	// StatusCancelled indicates the owning customer withdrew the order
	// while it was still pending. Terminal.
	StatusCancelled
)

// statusStrings returns the wire representation of every Status value.
func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked-up",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// validStatusStrings returns only the valid Status values, for validation
// and parsing.
func validStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as invalid
	return map[Status]string{
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked-up",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// transitions is the complete directed edge set of the state machine.
// Anything absent here is an invalid transition.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:  {StatusAssigned, StatusCancelled},
		StatusAssigned: {StatusPickedUp},
		StatusPickedUp: {StatusDelivered},
	}
}

// ParseStatus converts the wire form ("pending", "assigned", "picked-up",
// "delivered", "cancelled") into a Status. Unknown input yields a
// ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	for status, str := range validStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the valid values.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status, or "unknown" for invalid
// values. Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the edge s -> target exists in the state
// machine. It performs no side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge s -> target and returns the new status.
// Returns an InvalidTransitionError if the edge does not exist.
//
// Example:
//
//	next, err := order.StatusPending.TransitionTo(order.StatusAssigned)
//	if err != nil {
//	    // edge rejected
//	}
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// IsActive reports whether a delivery is underway: the only statuses during
// which the assigned delivery person may report location updates.
func (s Status) IsActive() bool {
	return s == StatusAssigned || s == StatusPickedUp
}

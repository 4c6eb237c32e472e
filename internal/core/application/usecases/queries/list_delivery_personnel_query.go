package queries

import (
	"errors"

	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/guard"
)

var ErrListDeliveryPersonnelQueryIsNotConstructed = errors.New(
	"ListDeliveryPersonnelQuery must be created via NewListDeliveryPersonnelQuery constructor",
)

// ListDeliveryPersonnelQuery asks for the roster of delivery personnel.
// Admin-only; used when assigning orders.
type ListDeliveryPersonnelQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

// NewListDeliveryPersonnelQuery creates a query for the courier roster.
func NewListDeliveryPersonnelQuery(actor services.Actor) (ListDeliveryPersonnelQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListDeliveryPersonnelQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return ListDeliveryPersonnelQuery{}, err
	}

	return ListDeliveryPersonnelQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveryPersonnelQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveryPersonnelQueryIsNotConstructed)
}

// Actor returns the caller.
func (q ListDeliveryPersonnelQuery) Actor() services.Actor { return q.actor }

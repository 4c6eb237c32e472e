package queries

import (
	"errors"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListOrdersQuery retrieves a page of orders scoped to the actor's role:
// customers see their own orders, delivery personnel see orders assigned to
// them, admins see everything.
type ListOrdersQuery struct {
	actor  services.Actor
	status *order.Status
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. Page defaults to 1 and limit
// to 20, capped at 100. A nil status matches every status.
func NewListOrdersQuery(actor services.Actor, status *order.Status, page, limit int) (ListOrdersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if page < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("page")
	}
	if limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("limit")
	}

	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return ListOrdersQuery{
		actor:  actor,
		status: status,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q ListOrdersQuery) Actor() services.Actor { return q.actor }

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

package queries

import (
	"errors"

	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery retrieves order counts per status, scoped to the
// actor's role: admins see the system-wide totals, customers their own
// orders, delivery personnel the orders assigned to them.
type GetOrderStatsQuery struct {
	actor services.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query.
func NewGetOrderStatsQuery(actor services.Actor) (GetOrderStatsQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return GetOrderStatsQuery{}, err
	}

	return GetOrderStatsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// Actor returns the requesting identity.
func (q GetOrderStatsQuery) Actor() services.Actor { return q.actor }

// GetOrderStatsQueryResponse carries order counts keyed by status string,
// plus the overall total. Exactly one of the role summaries is set for
// non-admin callers; admins get the full per-status breakdown only.
type GetOrderStatsQueryResponse struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`

	Customer *CustomerOrderStats `json:"customer,omitempty"`
	Delivery *DeliveryOrderStats `json:"delivery,omitempty"`
}

// CustomerOrderStats summarizes a customer's own orders.
type CustomerOrderStats struct {
	TotalOrders int `json:"totalOrders"`
	Pending     int `json:"pending"`
	InProgress  int `json:"inProgress"`
	Delivered   int `json:"delivered"`
}

// DeliveryOrderStats summarizes the workload of one delivery person.
type DeliveryOrderStats struct {
	TotalAssigned int `json:"totalAssigned"`
	Active        int `json:"active"`
	PickedUp      int `json:"pickedUp"`
	Completed     int `json:"completed"`
}

// NewCustomerOrderStats derives the customer summary from grouped status
// counts. In-progress covers assigned and picked-up orders.
func NewCustomerOrderStats(total int, byStatus map[string]int) CustomerOrderStats {
	return CustomerOrderStats{
		TotalOrders: total,
		Pending:     byStatus[order.StatusPending.String()],
		InProgress:  byStatus[order.StatusAssigned.String()] + byStatus[order.StatusPickedUp.String()],
		Delivered:   byStatus[order.StatusDelivered.String()],
	}
}

// NewDeliveryOrderStats derives the delivery-person summary from grouped
// status counts. Active covers assigned and picked-up orders.
func NewDeliveryOrderStats(total int, byStatus map[string]int) DeliveryOrderStats {
	return DeliveryOrderStats{
		TotalAssigned: total,
		Active:        byStatus[order.StatusAssigned.String()] + byStatus[order.StatusPickedUp.String()],
		PickedUp:      byStatus[order.StatusPickedUp.String()],
		Completed:     byStatus[order.StatusDelivered.String()],
	}
}

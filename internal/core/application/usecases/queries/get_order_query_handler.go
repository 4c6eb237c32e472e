package queries

import (
	"context"
	"errors"

	"deliveryhub/internal/core/domain/model/user"
	"deliveryhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order and enforces the view policy on
// the stored row. A non-admin requesting an order outside their scope
// receives Forbidden whether or not the order exists, so probing an
// identifier leaks nothing.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Admins get NotFound for absent orders; other
// roles get Forbidden for anything outside their scope, absent included.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Where("id = ?", query.OrderID().String()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderResponse{}, h.notFound(query)
	}
	if err != nil {
		return OrderResponse{}, err
	}

	if !h.mayView(query, row) {
		return OrderResponse{}, errs.NewForbiddenError("view order")
	}

	return row.toResponse()
}

func (h GetOrderQueryHandler) mayView(query GetOrderQuery, row orderRow) bool {
	actor := query.Actor()
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return row.CustomerID == actor.ID.String()
	case user.RoleDelivery:
		return row.DeliveryPersonID != nil && *row.DeliveryPersonID == actor.ID.String()
	default:
		return false
	}
}

func (h GetOrderQueryHandler) notFound(query GetOrderQuery) error {
	if query.Actor().Role == user.RoleAdmin {
		return errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	return errs.NewForbiddenError("view order")
}

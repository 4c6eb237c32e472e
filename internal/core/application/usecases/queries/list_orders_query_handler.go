package queries

import (
	"context"

	"deliveryhub/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves role-scoped order pages straight from the
// database, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. The actor's role decides the ownership
// filter; admins get the unscoped list.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders")

	switch query.Actor().Role {
	case user.RoleCustomer:
		tx = tx.Where("customer_id = ?", query.Actor().ID.String())
	case user.RoleDelivery:
		tx = tx.Where("delivery_person_id = ?", query.Actor().ID.String())
	case user.RoleAdmin:
		// unscoped
	}

	if query.Status() != nil {
		tx = tx.Where("status = ?", query.Status().String())
	}

	var rows []orderRow
	err := tx.
		Order("created_at DESC").
		Limit(query.Limit()).
		Offset((query.Page() - 1) * query.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		resp, convErr := row.toResponse()
		if convErr != nil {
			return nil, convErr
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

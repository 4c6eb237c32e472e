package queries

import (
	"context"

	"deliveryhub/internal/core/domain/model/user"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler aggregates order counts per status with a
// single grouped query.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for stats queries.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the aggregation scoped by the actor's role.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	tx := h.db.WithContext(ctx).Table("orders")
	switch query.Actor().Role {
	case user.RoleCustomer:
		tx = tx.Where("customer_id = ?", query.Actor().ID.String())
	case user.RoleDelivery:
		tx = tx.Where("delivery_person_id = ?", query.Actor().ID.String())
	case user.RoleAdmin:
		// system-wide
	}

	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int    `gorm:"column:count"`
	}
	err := tx.
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	resp := GetOrderStatsQueryResponse{ByStatus: make(map[string]int)}
	for _, row := range rows {
		resp.ByStatus[row.Status] = row.Count
		resp.Total += row.Count
	}

	switch query.Actor().Role {
	case user.RoleCustomer:
		summary := NewCustomerOrderStats(resp.Total, resp.ByStatus)
		resp.Customer = &summary
	case user.RoleDelivery:
		summary := NewDeliveryOrderStats(resp.Total, resp.ByStatus)
		resp.Delivery = &summary
	case user.RoleAdmin:
		// the per-status breakdown is the admin view
	}

	return resp, nil
}

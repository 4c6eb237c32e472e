package queries

import (
	"context"

	"deliveryhub/internal/core/domain/model/user"
	"deliveryhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// DeliveryPersonResponse is the read model of one delivery person in the
// roster.
type DeliveryPersonResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	IsActive            bool    `json:"isActive"`
	IsAvailable         bool    `json:"isAvailable"`
	TotalDeliveries     int     `json:"totalDeliveries"`
	CompletedDeliveries int     `json:"completedDeliveries"`
	Rating              float64 `json:"rating"`
}

// ListDeliveryPersonnelQueryHandler reads the courier roster for admins.
type ListDeliveryPersonnelQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveryPersonnelQueryHandler creates a handler for roster queries.
func NewListDeliveryPersonnelQueryHandler(db *gorm.DB) ListDeliveryPersonnelQueryHandler {
	return ListDeliveryPersonnelQueryHandler{db: db}
}

// Handle lists active delivery personnel sorted by name. Only admins may
// see the roster.
func (h ListDeliveryPersonnelQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveryPersonnelQuery,
) ([]DeliveryPersonResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Actor().Role != user.RoleAdmin {
		return nil, errs.NewForbiddenError("view delivery personnel")
	}

	var rows []struct {
		ID                  string  `gorm:"column:id"`
		Name                string  `gorm:"column:name"`
		IsActive            bool    `gorm:"column:is_active"`
		IsAvailable         bool    `gorm:"column:is_available"`
		TotalDeliveries     int     `gorm:"column:total_deliveries"`
		CompletedDeliveries int     `gorm:"column:completed_deliveries"`
		Rating              float64 `gorm:"column:rating"`
	}
	err := h.db.WithContext(ctx).
		Table("users").
		Where("role = ? AND is_active = ?", user.RoleDelivery.String(), true).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	personnel := make([]DeliveryPersonResponse, 0, len(rows))
	for _, row := range rows {
		personnel = append(personnel, DeliveryPersonResponse{
			ID:                  row.ID,
			Name:                row.Name,
			IsActive:            row.IsActive,
			IsAvailable:         row.IsAvailable,
			TotalDeliveries:     row.TotalDeliveries,
			CompletedDeliveries: row.CompletedDeliveries,
			Rating:              row.Rating,
		})
	}

	return personnel, nil
}

package orderrepo

import (
	"context"
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateInStatus saves an order's changes behind the expected-status guard.
// The WHERE clause on both id and status is the linearization point for
// racing transitions: the race loser matches zero rows and gets a
// ConflictError.
func (r *GormOrderRepository) UpdateInStatus(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	return nil
}

// UpdateTracking saves only the live tracking position, guarded by the
// expected status so a late location report cannot land on a completed
// order.
func (r *GormOrderRepository) UpdateTracking(
	ctx context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tracking := aggregate.Tracking()
	if tracking.CurrentLocation == nil {
		return errs.NewValueIsRequiredError("tracking.currentLocation")
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expectedStatus.String()).
		Updates(map[string]any{
			"current_lat":          tracking.CurrentLocation.Lat(),
			"current_lng":          tracking.CurrentLocation.Lng(),
			"last_location_update": tracking.LastLocationUpdate,
			"updated_at":           aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	return nil
}

// ListByCustomer retrieves the customer's orders, newest first.
func (r *GormOrderRepository) ListByCustomer(
	ctx context.Context,
	customerID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Where("customer_id = ?", customerID.Bytes())
	return r.list(tx, filter)
}

// ListByDeliveryPerson retrieves the courier's assigned orders, newest first.
func (r *GormOrderRepository) ListByDeliveryPerson(
	ctx context.Context,
	deliveryPersonID kernel.UUID,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Where("delivery_person_id = ?", deliveryPersonID.Bytes())
	return r.list(tx, filter)
}

// ListAll retrieves all orders, newest first.
func (r *GormOrderRepository) ListAll(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	return r.list(r.db.WithContext(ctx), filter)
}

// CountByStatus returns the number of orders per status.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		Count  int    `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int, len(rows))
	for _, row := range rows {
		status, parseErr := order.ParseStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = row.Count
	}

	return counts, nil
}

func (r *GormOrderRepository) list(tx *gorm.DB, filter ports.OrderFilter) ([]*order.Order, error) {
	if filter.Status != nil {
		tx = tx.Where("status = ?", filter.Status.String())
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit > 0 {
		tx = tx.Limit(limit).Offset((page - 1) * limit)
	}

	var dtos []OrderDTO
	if err := tx.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

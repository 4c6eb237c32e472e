// Package userrepo provides data transfer objects and mapping functions for
// user persistence. User records are created by the identity flow; the core
// reads them for authorization and assignment checks and writes only the
// delivery statistics.
package userrepo

import (
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting users.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(100)"`
	Role     string    `gorm:"type:varchar(16);index"`
	IsActive bool

	TotalDeliveries     int
	CompletedDeliveries int
	Rating              float64
	IsAvailable         bool
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	stats := aggregate.Stats()
	return UserDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Role:                aggregate.Role().String(),
		IsActive:            aggregate.IsActive(),
		TotalDeliveries:     stats.TotalDeliveries,
		CompletedDeliveries: stats.CompletedDeliveries,
		Rating:              stats.Rating,
		IsAvailable:         stats.IsAvailable,
	}
}

// toDomain converts a database row back into a user aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Name, role, dto.IsActive, user.DeliveryStats{
		TotalDeliveries:     dto.TotalDeliveries,
		CompletedDeliveries: dto.CompletedDeliveries,
		Rating:              dto.Rating,
		IsAvailable:         dto.IsAvailable,
	})
}

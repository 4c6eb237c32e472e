// Package outboxrepo persists serialized domain events in the same
// transaction as the mutation that produced them. A relay job drains the
// unpublished rows to the message broker.
package outboxrepo

import (
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for outbox messages.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName   string    `gorm:"type:varchar(64)"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Payload     []byte    `gorm:"type:jsonb"`
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(message ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:          message.ID.Bytes(),
		EventName:   message.EventName,
		OrderID:     message.OrderID.Bytes(),
		Payload:     message.Payload,
		CreatedAt:   message.CreatedAt,
		PublishedAt: message.PublishedAt,
	}
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		EventName:   dto.EventName,
		OrderID:     orderID,
		Payload:     dto.Payload,
		CreatedAt:   dto.CreatedAt,
		PublishedAt: dto.PublishedAt,
	}, nil
}

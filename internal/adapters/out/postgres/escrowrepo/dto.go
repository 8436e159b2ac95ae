// Package escrowrepo provides data transfer objects and mapping functions for
// escrow persistence. The order_id column carries a unique index so that a
// single order can never hold more than one escrow.
package escrowrepo

import (
	"time"

	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EscrowDTO represents the database structure for persisting escrow aggregates.
type EscrowDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status     int             `gorm:"index"`
	CreatedAt  time.Time       `gorm:"autoCreateTime:false"`
	ReleasedAt *time.Time
}

// TableName specifies the database table name for escrow entities.
func (EscrowDTO) TableName() string {
	return "escrows"
}

// fromDomain converts an escrow domain aggregate to its database representation.
func fromDomain(aggregate *escrow.Escrow) EscrowDTO {
	return EscrowDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		Amount:     aggregate.Amount(),
		Status:     int(aggregate.Status()),
		CreatedAt:  aggregate.CreatedAt(),
		ReleasedAt: aggregate.ReleasedAt(),
	}
}

// toDomain converts a database DTO to an escrow domain aggregate.
func toDomain(dto EscrowDTO) (*escrow.Escrow, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return escrow.RestoreEscrow(
		id,
		orderID,
		dto.Amount,
		escrow.Status(dto.Status),
		dto.CreatedAt,
		dto.ReleasedAt,
	)
}

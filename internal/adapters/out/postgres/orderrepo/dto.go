// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The pickup collection rides along as an owned child row,
// persisted and loaded together with the order aggregate.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	SellerID  uuid.UUID `gorm:"type:uuid;index"`
	BuyerID   uuid.UUID `gorm:"type:uuid;index"`
	Quantity  int
	Status    int       `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`

	Pickup PickupCollectionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// PickupCollectionDTO represents the pickup arrangement row owned by an order.
type PickupCollectionDTO struct {
	OrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PickupPointID uuid.UUID `gorm:"type:uuid"`
	ScheduledAt   *time.Time
}

// TableName specifies the database table name for pickup collection entities.
func (PickupCollectionDTO) TableName() string {
	return "pickup_collections"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		ProductID: aggregate.ProductID().Bytes(),
		SellerID:  aggregate.SellerID().Bytes(),
		BuyerID:   aggregate.BuyerID().Bytes(),
		Quantity:  aggregate.Quantity(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		Pickup: PickupCollectionDTO{
			OrderID:       aggregate.ID().Bytes(),
			PickupPointID: aggregate.Pickup().PickupPointID().Bytes(),
			ScheduledAt:   aggregate.Pickup().ScheduledAt(),
		},
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	pickupPointID, err := kernel.UUIDFromBytes(dto.Pickup.PickupPointID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := order.NewPickupCollection(pickupPointID, dto.Pickup.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		productID,
		sellerID,
		buyerID,
		dto.Quantity,
		order.Status(dto.Status),
		pickup,
		dto.CreatedAt,
	)
}

// Package productrepo provides data transfer objects and mapping functions for
// product persistence. It implements the repository pattern for the product
// aggregate, including the atomic stock reservation used during order placement.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product aggregates.
// Quantity carries a CHECK constraint mirroring the domain rule that stock is
// never negative.
type ProductDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID      uuid.UUID       `gorm:"type:uuid;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;index"`
	Name          string          `gorm:"type:varchar(255)"`
	Description   string          `gorm:"type:text"`
	StandardPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Quantity      int             `gorm:"check:quantity >= 0"`
	Status        int             `gorm:"index"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:            aggregate.ID().Bytes(),
		SellerID:      aggregate.SellerID().Bytes(),
		CategoryID:    aggregate.CategoryID().Bytes(),
		Name:          aggregate.Name(),
		Description:   aggregate.Description(),
		StandardPrice: aggregate.StandardPrice(),
		UnitPrice:     aggregate.UnitPrice(),
		Quantity:      aggregate.Quantity(),
		Status:        int(aggregate.Status()),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		sellerID,
		categoryID,
		dto.Name,
		dto.Description,
		dto.StandardPrice,
		dto.UnitPrice,
		dto.Quantity,
		product.Status(dto.Status),
	)
}

package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveProductsQueryHandler reads the purchasable listings straight from
// the store, skipping the aggregate layer.
type GetActiveProductsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveProductsQueryHandler creates a handler for active listing queries.
// Requires a GORM database connection for query execution.
func NewGetActiveProductsQueryHandler(db *gorm.DB) GetActiveProductsQueryHandler {
	return GetActiveProductsQueryHandler{db: db}
}

// Handle executes the query and returns all Active listings sorted by name.
func (h GetActiveProductsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveProductsQuery,
) ([]GetActiveProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]GetActiveProductsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			name,
			description,
			standard_price,
			unit_price,
			quantity
		FROM products
		WHERE status = ?
		ORDER BY name, id
	`, product.Active).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveProductsQueryResponse
		var id, sellerID uuid.UUID

		err = rows.Scan(
			&id,
			&sellerID,
			&resp.Name,
			&resp.Description,
			&resp.StandardPrice,
			&resp.UnitPrice,
			&resp.Quantity,
		)
		if err != nil {
			return nil, err
		}

		productID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = productID

		seller, idErr := kernel.UUIDFromBytes(sellerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.SellerID = seller

		products = append(products, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

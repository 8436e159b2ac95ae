package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
// Besides plain storage it exposes ReserveStock, the atomic debit that backs
// order placement under concurrency.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// ReserveStock atomically debits amount units from the product's quantity.
	// The check and the debit are a single conditional statement, so two
	// concurrent reservations can never both succeed on the last unit.
	// Returns the product as it looks after the debit.
	//
	// Failure modes: ObjectNotFound if the product does not exist,
	// a state conflict if it is not Active or has fewer than amount units.
	ReserveStock(ctx context.Context, productID kernel.UUID, amount int) (*product.Product, error)
}

// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the store directly and return plain response structs,
// bypassing the aggregates.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveProductsQueryIsNotConstructed = errors.New(
	"GetActiveProductsQuery must be created via NewGetActiveProductsQuery constructor",
)

// GetActiveProductsQuery retrieves all listings currently open for purchase.
type GetActiveProductsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveProductsQuery creates a query to retrieve active listings.
// This is a parameterless query.
func NewGetActiveProductsQuery() GetActiveProductsQuery {
	return GetActiveProductsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveProductsQueryIsNotConstructed if validation fails.
func (q GetActiveProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveProductsQueryIsNotConstructed)
}

// GetActiveProductsQueryResponse represents one purchasable listing.
type GetActiveProductsQueryResponse struct {
	ID            kernel.UUID
	SellerID      kernel.UUID
	Name          string
	Description   string
	StandardPrice decimal.Decimal
	UnitPrice     decimal.Decimal
	Quantity      int
}

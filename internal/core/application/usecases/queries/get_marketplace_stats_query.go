package queries

import (
	"errors"

	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetMarketplaceStatsQueryIsNotConstructed = errors.New(
	"GetMarketplaceStatsQuery must be created via NewGetMarketplaceStatsQuery constructor",
)

// GetMarketplaceStatsQuery retrieves the operational counters shown on the
// admin dashboard and logged by the stats reporting job.
type GetMarketplaceStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMarketplaceStatsQuery creates a query to retrieve marketplace stats.
// This is a parameterless query.
func NewGetMarketplaceStatsQuery() GetMarketplaceStatsQuery {
	return GetMarketplaceStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMarketplaceStatsQueryIsNotConstructed if validation fails.
func (q GetMarketplaceStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetMarketplaceStatsQueryIsNotConstructed)
}

// GetMarketplaceStatsQueryResponse holds the marketplace counters.
// PendingDisputes counts Open and InProgress disputes; HeldAmount is the sum
// over escrows still in Held.
type GetMarketplaceStatsQueryResponse struct {
	ActiveProducts  int64
	TotalOrders     int64
	PendingDisputes int64
	HeldAmount      decimal.Decimal
}

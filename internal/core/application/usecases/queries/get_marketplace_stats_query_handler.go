package queries

import (
	"context"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// GetMarketplaceStatsQueryHandler computes the marketplace counters in a
// single round trip.
type GetMarketplaceStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetMarketplaceStatsQueryHandler creates a handler for stats queries.
// Requires a GORM database connection for query execution.
func NewGetMarketplaceStatsQueryHandler(db *gorm.DB) GetMarketplaceStatsQueryHandler {
	return GetMarketplaceStatsQueryHandler{db: db}
}

// Handle executes the stats query.
func (h GetMarketplaceStatsQueryHandler) Handle(
	ctx context.Context,
	query GetMarketplaceStatsQuery,
) (GetMarketplaceStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMarketplaceStatsQueryResponse{}, err
	}

	var resp GetMarketplaceStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM products WHERE status = ?),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM disputes WHERE status IN (?, ?)),
			(SELECT COALESCE(SUM(amount), 0) FROM escrows WHERE status = ?)
	`, product.Active, dispute.Open, dispute.InProgress, escrow.Held).Row()

	err := row.Scan(
		&resp.ActiveProducts,
		&resp.TotalOrders,
		&resp.PendingDisputes,
		&resp.HeldAmount,
	)
	if err != nil {
		return GetMarketplaceStatsQueryResponse{}, err
	}

	return resp, nil
}

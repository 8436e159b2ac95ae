package ports

import (
	"context"

	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
)

// EscrowRepository defines the persistence contract for escrow aggregates.
//
// Update is the critical path: when an aggregate has left Held in memory,
// the repository persists the transition as a test-and-set against the Held
// row. Exactly one of any number of concurrent callers wins; the losers get
// a state conflict and the row is never partially written.
type EscrowRepository interface {
	// Add persists a new escrow aggregate to storage.
	// There is at most one escrow per order; a second Add for the same order
	// fails with a duplicate key error the caller may treat as idempotent.
	Add(ctx context.Context, aggregate *escrow.Escrow) error

	// Update persists changes to an existing escrow aggregate.
	// A transition out of Held is applied conditionally on the stored row
	// still being Held.
	Update(ctx context.Context, aggregate *escrow.Escrow) error

	// Get retrieves an escrow aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*escrow.Escrow, error)

	// GetByOrderID retrieves the escrow opened for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*escrow.Escrow, error)

	// GetForUpdate retrieves an escrow and locks its row for the duration of
	// the surrounding transaction. Used when filing a dispute, so the Held
	// check cannot race a concurrent release or refund.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*escrow.Escrow, error)
}

package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"
)

// ChallengeRepository defines the persistence contract for verification
// challenges.
//
// Two partial unique constraints, both scoped to unused rows, back the
// issuance path: no two simultaneously unused challenges share a code, and
// an order has at most one unused challenge. Add surfaces a violation of
// either as a duplicate key error so the caller can retry with a fresh code.
type ChallengeRepository interface {
	// Add persists a new unused challenge.
	// Fails with a duplicate key error when the code is already active or
	// the order already has an unused challenge.
	Add(ctx context.Context, aggregate *verification.Challenge) error

	// Update persists changes to an existing challenge, in particular the
	// used flag after redemption.
	Update(ctx context.Context, aggregate *verification.Challenge) error

	// GetUnusedByOrderID retrieves the order's currently unused challenge.
	GetUnusedByOrderID(ctx context.Context, orderID kernel.UUID) (*verification.Challenge, error)

	// GetByOrderID retrieves the order's latest challenge whether or not it
	// was redeemed. Lets callers tell a consumed challenge apart from one
	// that never existed.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*verification.Challenge, error)
}

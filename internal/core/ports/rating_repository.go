package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
)

// RatingRepository defines the persistence contract for ratings.
// A unique constraint on (order, rater) keeps a party to one rating
// per order; Add surfaces a violation as a duplicate key error.
type RatingRepository interface {
	// Add persists a new rating.
	Add(ctx context.Context, aggregate *rating.Rating) error

	// GetByOrderID retrieves all ratings left on an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*rating.Rating, error)
}

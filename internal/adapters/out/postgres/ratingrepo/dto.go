// Package ratingrepo provides data transfer objects and mapping functions for
// rating persistence. A composite unique index on (order_id, rater_id) makes
// the one-rating-per-party rule a database fact rather than a racy lookup.
package ratingrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// RatingDTO represents the database structure for persisting ratings.
type RatingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ratings_order_rater"`
	RaterID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_ratings_order_rater"`
	RatedID   uuid.UUID `gorm:"type:uuid;index"`
	Value     float64
	Comment   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for rating entities.
func (RatingDTO) TableName() string {
	return "ratings"
}

// fromDomain converts a rating domain entity to its database representation.
func fromDomain(aggregate *rating.Rating) RatingDTO {
	return RatingDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		RaterID:   aggregate.RaterID().Bytes(),
		RatedID:   aggregate.RatedID().Bytes(),
		Value:     aggregate.Value(),
		Comment:   aggregate.Comment(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a rating domain entity.
func toDomain(dto RatingDTO) (*rating.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	raterID, err := kernel.UUIDFromBytes(dto.RaterID[:])
	if err != nil {
		return nil, err
	}

	ratedID, err := kernel.UUIDFromBytes(dto.RatedID[:])
	if err != nil {
		return nil, err
	}

	return rating.RestoreRating(
		id,
		orderID,
		raterID,
		ratedID,
		dto.Value,
		dto.Comment,
		dto.CreatedAt,
	)
}

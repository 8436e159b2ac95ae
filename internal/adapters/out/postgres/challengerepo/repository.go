package challengerepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChallengeRepository implements ChallengeRepository using GORM.
type GormChallengeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChallengeRepository creates a new GORM challenge repository.
func NewGormChallengeRepository(db *gorm.DB, tracker aggregateTracker) *GormChallengeRepository {
	return &GormChallengeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new challenge to the database. A duplicate key error means
// either the order already has an unused challenge or the code value is
// currently taken by another order; callers distinguish the two by
// re-reading for the order.
func (r *GormChallengeRepository) Add(ctx context.Context, c *verification.Challenge) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(c.OrderID(), c)
	return nil
}

// Update marks the order's challenge as used. The WHERE clause demands the
// stored row still be unused, so a second redemption of the same code matches
// nothing and reports the conflict instead of silently succeeding.
func (r *GormChallengeRepository) Update(ctx context.Context, c *verification.Challenge) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).Model(&ChallengeDTO{}).
		Where("order_id = ? AND used = false", dto.OrderID).
		Select("Used").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return verification.ErrChallengeAlreadyUsed
	}

	r.tracker.TrackAggregate(c.OrderID(), c)
	return nil
}

// GetUnusedByOrderID retrieves the order's active challenge, if any.
func (r *GormChallengeRepository) GetUnusedByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*verification.Challenge, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ChallengeDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND used = false", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("challenge", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the order's latest challenge, redeemed or not.
func (r *GormChallengeRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*verification.Challenge, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ChallengeDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("challenge", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

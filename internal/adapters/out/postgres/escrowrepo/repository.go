package escrowrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEscrowRepository implements EscrowRepository using GORM.
type GormEscrowRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormEscrowRepository creates a new GORM escrow repository.
func NewGormEscrowRepository(db *gorm.DB, tracker aggregateTracker) *GormEscrowRepository {
	return &GormEscrowRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new escrow to the database. The unique index on order_id makes
// a second escrow for the same order fail with a duplicate key error.
func (r *GormEscrowRepository) Add(ctx context.Context, aggregate *escrow.Escrow) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing escrow to the database.
//
// When the in-memory aggregate has left Held, the write is a test-and-set:
// the WHERE clause demands the stored row still be Held, so of two racing
// settlements (say a code redemption against a dispute refund) exactly one
// lands and the other observes a state conflict.
func (r *GormEscrowRepository) Update(ctx context.Context, aggregate *escrow.Escrow) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).Model(&EscrowDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "ReleasedAt")
	if aggregate.Status().IsTerminal() {
		query = query.Where("status = ?", int(escrow.Held))
	}

	result := query.Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if aggregate.Status().IsTerminal() {
			return errs.NewStateConflictError("escrow is not held")
		}
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an escrow by ID.
func (r *GormEscrowRepository) Get(ctx context.Context, id kernel.UUID) (*escrow.Escrow, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EscrowDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the escrow opened for the given order.
func (r *GormEscrowRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*escrow.Escrow, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EscrowDTO
	err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves an escrow by ID and locks its row for the duration
// of the enclosing transaction. Dispute filing reads the escrow this way so
// the held check cannot be invalidated by a concurrent settlement before the
// dispute row is written.
func (r *GormEscrowRepository) GetForUpdate(
	ctx context.Context, id kernel.UUID,
) (*escrow.Escrow, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EscrowDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("escrow", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

package productrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
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

// Update saves an existing product to the database.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Select("SellerID", "CategoryID", "Name", "Description",
			"StandardPrice", "UnitPrice", "Quantity", "Status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ReserveStock debits amount units from the product in a single conditional
// UPDATE. The WHERE clause carries the status and quantity checks, so under
// concurrency at most one of two competing reservations for the last units
// can match the row. When the debit empties the listing the same statement
// flips its status to Sold.
func (r *GormProductRepository) ReserveStock(
	ctx context.Context, productID kernel.UUID, amount int,
) (*product.Product, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidError("amount")
	}

	var dto ProductDTO
	result := r.db.WithContext(ctx).Raw(
		`UPDATE products
		 SET quantity = quantity - ?,
		     status = CASE WHEN quantity = ? THEN ? ELSE status END
		 WHERE id = ? AND status = ? AND quantity >= ?
		 RETURNING id, seller_id, category_id, name, description,
		           standard_price, unit_price, quantity, status`,
		amount, amount, int(product.Sold),
		productID.Bytes(), int(product.Active), amount,
	).Scan(&dto)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.classifyReserveFailure(ctx, productID)
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// classifyReserveFailure re-reads the row to tell the caller why the
// conditional debit matched nothing.
func (r *GormProductRepository) classifyReserveFailure(
	ctx context.Context, productID kernel.UUID,
) error {
	current, err := r.Get(ctx, productID)
	if err != nil {
		return err
	}

	if current.Status() != product.Active {
		return errs.NewStateConflictError("product is not active")
	}

	return product.ErrInsufficientStock
}

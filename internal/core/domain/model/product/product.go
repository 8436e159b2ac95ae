package product

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

	// ErrInsufficientStock is returned when a reservation asks for more units
	// than the listing currently has.
	ErrInsufficientStock = errs.NewStateConflictError("insufficient stock")
)

// Product is the aggregate root for a marketplace listing. It owns the
// available quantity and the listing status, and is the only place where
// stock is debited.
//
// Product maintains these invariants:
//   - Quantity is never negative
//   - Reservation is a strict debit: it only succeeds while the listing is
//     Active and has at least the requested amount
//   - The status becomes Sold exactly when a reservation drives quantity to 0
//   - Prices are fixed at listing time; reservations never change them
type Product struct {
	id            kernel.UUID
	sellerID      kernel.UUID
	categoryID    kernel.UUID
	name          string
	description   string
	standardPrice decimal.Decimal
	unitPrice     decimal.Decimal
	quantity      int
	status        Status

	isConstructed bool
}

// NewProduct creates a new Active listing with validation.
// The unit price must be positive and the initial quantity must be greater
// than zero; the standard (reference) price may not be negative.
func NewProduct(
	id kernel.UUID,
	sellerID kernel.UUID,
	categoryID kernel.UUID,
	name string,
	description string,
	standardPrice decimal.Decimal,
	unitPrice decimal.Decimal,
	quantity int,
) (*Product, error) {
	product := &Product{
		description:   description,
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		product.setID(id),
		product.setSellerID(sellerID),
		product.setCategoryID(categoryID),
		product.setName(name),
		product.setStandardPrice(standardPrice),
		product.setUnitPrice(unitPrice),
		product.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return product, nil
}

// RestoreProduct reconstructs a Product from persistence without applying the
// creation-time rules: a restored listing may legitimately have zero quantity
// or a non-Active status.
func RestoreProduct(
	id kernel.UUID,
	sellerID kernel.UUID,
	categoryID kernel.UUID,
	name string,
	description string,
	standardPrice decimal.Decimal,
	unitPrice decimal.Decimal,
	quantity int,
	status Status,
) (*Product, error) {
	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		categoryID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}

	return &Product{
		id:            id,
		sellerID:      sellerID,
		categoryID:    categoryID,
		name:          name,
		description:   description,
		standardPrice: standardPrice,
		unitPrice:     unitPrice,
		quantity:      quantity,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product instance was properly constructed through a factory.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SellerID returns the identity of the listing seller.
func (p *Product) SellerID() kernel.UUID {
	return p.sellerID
}

// CategoryID returns the catalog category reference.
func (p *Product) CategoryID() kernel.UUID {
	return p.categoryID
}

// Name returns the listing name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the listing description.
func (p *Product) Description() string {
	return p.description
}

// StandardPrice returns the reference (non-discounted) price.
func (p *Product) StandardPrice() decimal.Decimal {
	return p.standardPrice
}

// UnitPrice returns the price per unit used for escrow amounts.
func (p *Product) UnitPrice() decimal.Decimal {
	return p.unitPrice
}

// Quantity returns the units currently available for reservation.
func (p *Product) Quantity() int {
	return p.quantity
}

// Status returns the current listing status.
func (p *Product) Status() Status {
	return p.status
}

// Reserve debits the requested amount from the available quantity.
//
// Business rules:
//   - The listing must be Active
//   - The amount must be positive and not exceed the available quantity
//   - When the debit empties the listing, the status becomes Sold
//
// This method expresses the reservation invariant on the in-memory aggregate;
// under concurrent access the persistence layer enforces the same rule as a
// single conditional update so that the check and the debit cannot be split
// across racing callers.
func (p *Product) Reserve(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	if err := p.status.ValidateReserve(); err != nil {
		return err
	}

	if amount > p.quantity {
		return ErrInsufficientStock
	}

	p.quantity -= amount
	if p.quantity == 0 {
		p.status = Sold
	}
	return nil
}

// Deactivate withdraws the listing from the marketplace.
// Only an Active listing can be deactivated; Sold is terminal.
func (p *Product) Deactivate() error {
	if p.status != Active {
		return errs.NewStateConflictErrorWithCause(
			"product is not active",
			fmt.Errorf("%s is not a valid status to deactivate from", p.status.String()),
		)
	}
	p.status = Inactive
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}
	p.sellerID = sellerID
	return nil
}

func (p *Product) setCategoryID(categoryID kernel.UUID) error {
	if err := categoryID.Validate(); err != nil {
		return err
	}
	p.categoryID = categoryID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setStandardPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("standard price is invalid",
			fmt.Errorf("%s is negative", price))
	}
	p.standardPrice = price
	return nil
}

func (p *Product) setUnitPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%s is not greater than 0", price))
	}
	p.unitPrice = price
	return nil
}

func (p *Product) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	p.quantity = quantity
	return nil
}

package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrSelfTradeNotAllowed is returned when the buyer of an order is the
	// seller of the referenced product.
	ErrSelfTradeNotAllowed = errs.NewValueIsInvalidError("buyer and seller must be different users")
)

// Order represents a settled purchase of a quantity of a single product.
// It is created only after stock was successfully reserved, and is immutable
// except for the status, which advances to Delivered through verification-code
// redemption.
//
// Order maintains these invariants:
//   - Buyer and seller are different users
//   - Quantity is positive and fixed at creation
//   - The pickup collection record exists for the order's whole lifetime
//   - Status only moves Confirmed -> Delivered
type Order struct {
	id        kernel.UUID
	productID kernel.UUID
	sellerID  kernel.UUID
	buyerID   kernel.UUID
	quantity  int
	status    Status
	pickup    PickupCollection
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new Confirmed order with validation.
// The caller is responsible for having reserved the stock beforehand;
// NewOrder only enforces the structural invariants.
func NewOrder(
	id kernel.UUID,
	productID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity int,
	pickup PickupCollection,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Confirmed,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setProductID(productID),
		order.setParties(sellerID, buyerID),
		order.setQuantity(quantity),
		order.setPickup(pickup),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current status.
func RestoreOrder(
	id kernel.UUID,
	productID kernel.UUID,
	sellerID kernel.UUID,
	buyerID kernel.UUID,
	quantity int,
	status Status,
	pickup PickupCollection,
	createdAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order, err := NewOrder(id, productID, sellerID, buyerID, quantity, pickup, createdAt)
	if err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProductID returns the purchased product reference.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// SellerID returns the selling party's identity.
func (o *Order) SellerID() kernel.UUID {
	return o.sellerID
}

// BuyerID returns the buying party's identity.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Quantity returns the number of units purchased.
func (o *Order) Quantity() int {
	return o.quantity
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Pickup returns the pickup collection record for the handoff.
func (o *Order) Pickup() PickupCollection {
	return o.pickup
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Deliver marks the order as delivered after a verified handoff.
// The order must currently be Confirmed; Delivered is final.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	o.productID = productID
	return nil
}

func (o *Order) setParties(sellerID, buyerID kernel.UUID) error {
	if err := errors.Join(sellerID.Validate(), buyerID.Validate()); err != nil {
		return err
	}
	if sellerID.IsEqual(buyerID) {
		return ErrSelfTradeNotAllowed
	}
	o.sellerID = sellerID
	o.buyerID = buyerID
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPickup(pickup PickupCollection) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	o.pickup = pickup
	return nil
}

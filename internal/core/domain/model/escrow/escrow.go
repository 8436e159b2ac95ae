package escrow

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrEscrowIsNotConstructed is returned when an Escrow instance was not created
// through the NewEscrow or RestoreEscrow factory methods.
var ErrEscrowIsNotConstructed = errors.New("Escrow must be created via NewEscrow or RestoreEscrow")

// Escrow is the bookkeeping record that retains an order's payment amount
// until the handoff is confirmed or an arbiter rules on a dispute.
//
// Escrow maintains these invariants:
//   - Exactly one escrow exists per order; the repository enforces uniqueness
//   - The amount equals quantity times unit price at order time and never changes
//   - Held is left at most once; Released and Refunded are terminal
//   - The release timestamp is set exactly when Held is left
type Escrow struct {
	id         kernel.UUID
	orderID    kernel.UUID
	amount     decimal.Decimal
	status     Status
	createdAt  time.Time
	releasedAt *time.Time

	isConstructed bool
}

// NewEscrow creates a Held escrow for an order with validation.
// The amount must be positive; it is fixed for the escrow's lifetime.
func NewEscrow(id, orderID kernel.UUID, amount decimal.Decimal, createdAt time.Time) (*Escrow, error) {
	e := &Escrow{
		status:        Held,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setOrderID(orderID),
		e.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEscrow reconstructs an Escrow from persistence, including its status
// and release timestamp.
func RestoreEscrow(
	id, orderID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	createdAt time.Time,
	releasedAt *time.Time,
) (*Escrow, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	e, err := NewEscrow(id, orderID, amount, createdAt)
	if err != nil {
		return nil, err
	}

	e.status = status
	e.releasedAt = releasedAt
	return e, nil
}

// Validate ensures the Escrow instance was properly constructed through a factory.
func (e *Escrow) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEscrowIsNotConstructed
	}
	return nil
}

// IsEqual compares two escrows by their unique identifiers.
func (e *Escrow) IsEqual(other *Escrow) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the escrow's unique identifier.
func (e *Escrow) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this escrow belongs to.
func (e *Escrow) OrderID() kernel.UUID {
	return e.orderID
}

// Amount returns the retained amount, fixed at creation.
func (e *Escrow) Amount() decimal.Decimal {
	return e.amount
}

// Status returns the current escrow status.
func (e *Escrow) Status() Status {
	return e.status
}

// CreatedAt returns the escrow creation timestamp.
func (e *Escrow) CreatedAt() time.Time {
	return e.createdAt
}

// ReleasedAt returns the moment the escrow left Held, or nil while Held.
func (e *Escrow) ReleasedAt() *time.Time {
	return e.releasedAt
}

// Release moves the escrow to Released and records the transition time.
// Fails if the escrow is not currently Held; the transition is final.
func (e *Escrow) Release(at time.Time) error {
	newStatus, err := e.status.Release()
	if err != nil {
		return err
	}

	e.status = newStatus
	e.releasedAt = &at
	return nil
}

// Refund moves the escrow to Refunded and records the transition time.
// Fails if the escrow is not currently Held; the transition is final.
func (e *Escrow) Refund(at time.Time) error {
	newStatus, err := e.status.Refund()
	if err != nil {
		return err
	}

	e.status = newStatus
	e.releasedAt = &at
	return nil
}

func (e *Escrow) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Escrow) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Escrow) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	e.amount = amount
	return nil
}

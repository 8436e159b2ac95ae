// Package rating contains the Rating value: feedback one party leaves for the
// other after an order is delivered and its escrow settled.
package rating

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	// MinValue is the lowest accepted rating.
	MinValue = 1.0

	// MaxValue is the highest accepted rating.
	MaxValue = 5.0
)

var (
	// ErrRatingIsNotConstructed is returned when a Rating instance was not
	// created through the NewRating or RestoreRating factory methods.
	ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating")

	// ErrRatingSelfNotAllowed is returned when a party tries to rate themselves.
	ErrRatingSelfNotAllowed = errs.NewValueIsInvalidError("rater and rated must be different users")
)

// Rating records one party's score for the other on a settled order.
// A rater may leave at most one rating per order; the repository enforces
// uniqueness on (order, rater).
type Rating struct {
	id        kernel.UUID
	orderID   kernel.UUID
	raterID   kernel.UUID
	ratedID   kernel.UUID
	value     float64
	comment   *string
	createdAt time.Time

	isConstructed bool
}

// NewRating creates a rating with a value within [MinValue, MaxValue].
func NewRating(
	id, orderID, raterID, ratedID kernel.UUID,
	value float64,
	comment *string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOrderID(orderID),
		r.setParties(raterID, ratedID),
		r.setValue(value),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRating reconstructs a Rating from persistence.
func RestoreRating(
	id, orderID, raterID, ratedID kernel.UUID,
	value float64,
	comment *string,
	createdAt time.Time,
) (*Rating, error) {
	return NewRating(id, orderID, raterID, ratedID, value, comment, createdAt)
}

// Validate ensures the Rating instance was properly constructed through a factory.
func (r *Rating) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRatingIsNotConstructed
	}
	return nil
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order the rating refers to.
func (r *Rating) OrderID() kernel.UUID {
	return r.orderID
}

// RaterID returns the party who left the rating.
func (r *Rating) RaterID() kernel.UUID {
	return r.raterID
}

// RatedID returns the party the rating is about.
func (r *Rating) RatedID() kernel.UUID {
	return r.ratedID
}

// Value returns the score in [MinValue, MaxValue].
func (r *Rating) Value() float64 {
	return r.value
}

// Comment returns the optional free-text remark, or nil.
func (r *Rating) Comment() *string {
	return r.comment
}

// CreatedAt returns the submission timestamp.
func (r *Rating) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Rating) setParties(raterID, ratedID kernel.UUID) error {
	if err := errors.Join(raterID.Validate(), ratedID.Validate()); err != nil {
		return err
	}
	if raterID.IsEqual(ratedID) {
		return ErrRatingSelfNotAllowed
	}
	r.raterID = raterID
	r.ratedID = ratedID
	return nil
}

func (r *Rating) setValue(value float64) error {
	if value < MinValue || value > MaxValue {
		return errs.NewValueIsOutOfRangeError("value", value, MinValue, MaxValue)
	}
	r.value = value
	return nil
}

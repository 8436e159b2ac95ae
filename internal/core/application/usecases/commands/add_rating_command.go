package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddRatingCommandIsNotConstructed = errors.New(
	"AddRatingCommand must be created via NewAddRatingCommand constructor",
)

// AddRatingCommand represents one party's rating of the other on a settled order.
type AddRatingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	raterID kernel.UUID
	ratedID kernel.UUID
	value   float64
	comment *string

	guard guard.ConstructorGuard
}

// NewAddRatingCommand creates a command to add a rating.
// Validates identifiers and that value lies within the accepted range;
// comment is optional.
func NewAddRatingCommand(
	orderID, raterID, ratedID kernel.UUID,
	value float64,
	comment *string,
) (AddRatingCommand, error) {
	cmd := AddRatingCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRaterID(raterID),
		cmd.setRatedID(ratedID),
		cmd.setValue(value),
	); err != nil {
		return AddRatingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddRatingCommand) Validate() error {
	return c.guard.Validate(ErrAddRatingCommandIsNotConstructed)
}

// OrderID returns the order the rating refers to.
func (c AddRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RaterID returns the party leaving the rating.
func (c AddRatingCommand) RaterID() kernel.UUID {
	return c.raterID
}

// RatedID returns the party being rated.
func (c AddRatingCommand) RatedID() kernel.UUID {
	return c.ratedID
}

// Value returns the score.
func (c AddRatingCommand) Value() float64 {
	return c.value
}

// Comment returns the optional free-text remark, or nil.
func (c AddRatingCommand) Comment() *string {
	return c.comment
}

func (c *AddRatingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddRatingCommand) setRaterID(raterID kernel.UUID) error {
	if err := raterID.Validate(); err != nil {
		return err
	}

	c.raterID = raterID
	return nil
}

func (c *AddRatingCommand) setRatedID(ratedID kernel.UUID) error {
	if err := ratedID.Validate(); err != nil {
		return err
	}

	c.ratedID = ratedID
	return nil
}

func (c *AddRatingCommand) setValue(value float64) error {
	if value < rating.MinValue || value > rating.MaxValue {
		return errs.NewValueIsOutOfRangeError("value", value, rating.MinValue, rating.MaxValue)
	}

	c.value = value
	return nil
}

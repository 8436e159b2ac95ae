package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// PlaceOrderCommand represents a buyer's request to purchase a quantity of a
// listed product, naming the pickup point for the in-person handoff and an
// optional agreed time slot.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, productID, buyerID, 2, pickupPointID, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	productID     kernel.UUID
	buyerID       kernel.UUID
	quantity      int
	pickupPointID kernel.UUID
	scheduledAt   *time.Time

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order.
// Validates identifiers and that quantity is positive; scheduledAt may be nil.
func NewPlaceOrderCommand(
	orderID, productID, buyerID kernel.UUID,
	quantity int,
	pickupPointID kernel.UUID,
	scheduledAt *time.Time,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		scheduledAt: scheduledAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setBuyerID(buyerID),
		cmd.setQuantity(quantity),
		cmd.setPickupPointID(pickupPointID),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the listing being purchased.
func (c PlaceOrderCommand) ProductID() kernel.UUID {
	return c.productID
}

// BuyerID returns the purchasing party's identity.
func (c PlaceOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Quantity returns the number of units requested.
func (c PlaceOrderCommand) Quantity() int {
	return c.quantity
}

// PickupPointID returns the handoff location reference.
func (c PlaceOrderCommand) PickupPointID() kernel.UUID {
	return c.pickupPointID
}

// ScheduledAt returns the agreed handoff slot, or nil if none was set.
func (c PlaceOrderCommand) ScheduledAt() *time.Time {
	return c.scheduledAt
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *PlaceOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *PlaceOrderCommand) setPickupPointID(pickupPointID kernel.UUID) error {
	if err := pickupPointID.Validate(); err != nil {
		return err
	}

	c.pickupPointID = pickupPointID
	return nil
}

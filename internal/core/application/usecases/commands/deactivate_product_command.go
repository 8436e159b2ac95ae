package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrDeactivateProductCommandIsNotConstructed = errors.New(
	"DeactivateProductCommand must be created via NewDeactivateProductCommand constructor",
)

// DeactivateProductCommand withdraws a seller's listing from the marketplace.
type DeactivateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	sellerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateProductCommand creates a command to deactivate a listing.
func NewDeactivateProductCommand(productID, sellerID kernel.UUID) (DeactivateProductCommand, error) {
	cmd := DeactivateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setSellerID(sellerID),
	); err != nil {
		return DeactivateProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeactivateProductCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateProductCommandIsNotConstructed)
}

// ProductID returns the listing to withdraw.
func (c DeactivateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// SellerID returns the caller claiming ownership of the listing.
func (c DeactivateProductCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c *DeactivateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *DeactivateProductCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

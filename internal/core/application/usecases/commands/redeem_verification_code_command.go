package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRedeemVerificationCodeCommandIsNotConstructed = errors.New(
		"RedeemVerificationCodeCommand must be created via NewRedeemVerificationCodeCommand constructor",
	)
	ErrCodeIsRequired = errors.New("code is required")
)

// RedeemVerificationCodeCommand represents the seller entering the buyer's
// code at the handoff. A successful redemption settles the order: the
// challenge is consumed, the escrow releases, and the order is delivered.
type RedeemVerificationCodeCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sellerID kernel.UUID
	code     string

	guard guard.ConstructorGuard
}

// NewRedeemVerificationCodeCommand creates a command to redeem a verification code.
// The code only needs to be present here; exact matching against the stored
// code happens in the domain.
func NewRedeemVerificationCodeCommand(
	orderID, sellerID kernel.UUID,
	code string,
) (RedeemVerificationCodeCommand, error) {
	cmd := RedeemVerificationCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
		cmd.setCode(code),
	); err != nil {
		return RedeemVerificationCodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RedeemVerificationCodeCommand) Validate() error {
	return c.guard.Validate(ErrRedeemVerificationCodeCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c RedeemVerificationCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SellerID returns the party presenting the code.
func (c RedeemVerificationCodeCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// Code returns the entered code as typed, without normalization.
func (c RedeemVerificationCodeCommand) Code() string {
	return c.code
}

func (c *RedeemVerificationCodeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RedeemVerificationCodeCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *RedeemVerificationCodeCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}

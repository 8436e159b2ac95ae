package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrIssueVerificationCodeCommandIsNotConstructed = errors.New(
	"IssueVerificationCodeCommand must be created via NewIssueVerificationCodeCommand constructor",
)

// IssueVerificationCodeCommand requests a handoff verification code for an
// order on behalf of its buyer.
type IssueVerificationCodeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueVerificationCodeCommand creates a command to issue a verification code.
func NewIssueVerificationCodeCommand(orderID, buyerID kernel.UUID) (IssueVerificationCodeCommand, error) {
	cmd := IssueVerificationCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
	); err != nil {
		return IssueVerificationCodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueVerificationCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueVerificationCodeCommandIsNotConstructed)
}

// OrderID returns the order to issue the code for.
func (c IssueVerificationCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the caller requesting the code.
func (c IssueVerificationCodeCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c *IssueVerificationCodeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *IssueVerificationCodeCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

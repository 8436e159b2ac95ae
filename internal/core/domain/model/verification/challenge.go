// Package verification contains the one-time handoff challenge: a short
// numeric code shared between buyer and seller to confirm that the in-person
// exchange of goods actually happened.
package verification

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CodeLength is the number of decimal digits in a verification code.
const CodeLength = 6

var (
	// ErrChallengeIsNotConstructed is returned when a Challenge instance was not
	// created through the NewChallenge or RestoreChallenge factory methods.
	ErrChallengeIsNotConstructed = errors.New("Challenge must be created via NewChallenge or RestoreChallenge")

	// ErrChallengeAlreadyUsed is returned when redeeming a challenge that was
	// already consumed. A challenge is single-use.
	ErrChallengeAlreadyUsed = errs.NewStateConflictError("verification code was already used")

	// ErrCodeMismatch is returned when the entered code does not exactly match
	// the stored one. No normalization is applied.
	ErrCodeMismatch = errs.NewStateConflictError("verification code does not match")

	// ErrSellerMismatch is returned when a party other than the recorded seller
	// attempts to redeem the challenge.
	ErrSellerMismatch = errs.NewAuthorizationError("seller does not match the verification challenge")

	codeSpace = big.NewInt(1_000_000)
)

// Challenge is the one-time verification record for an order's handoff.
// At most one unused challenge exists per order, and no two simultaneously
// unused challenges share a code; the repository enforces both with partial
// unique constraints so that concurrent issuance cannot slip a duplicate in.
type Challenge struct {
	orderID   kernel.UUID
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	code      string
	used      bool
	createdAt time.Time

	isConstructed bool
}

// NewRandomCode draws a code uniformly from the full 6-digit space,
// zero-padded to CodeLength characters.
func NewRandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NewChallenge creates an unused challenge binding an order's buyer and
// seller to a code.
func NewChallenge(orderID, buyerID, sellerID kernel.UUID, code string, createdAt time.Time) (*Challenge, error) {
	c := &Challenge{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setParties(buyerID, sellerID),
		c.setCode(code),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreChallenge reconstructs a Challenge from persistence, including its used flag.
func RestoreChallenge(
	orderID, buyerID, sellerID kernel.UUID,
	code string,
	used bool,
	createdAt time.Time,
) (*Challenge, error) {
	c, err := NewChallenge(orderID, buyerID, sellerID, code, createdAt)
	if err != nil {
		return nil, err
	}

	c.used = used
	return c, nil
}

// Validate ensures the Challenge instance was properly constructed through a factory.
func (c *Challenge) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChallengeIsNotConstructed
	}
	return nil
}

// OrderID returns the order this challenge verifies.
func (c *Challenge) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buying party recorded on the challenge.
func (c *Challenge) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the selling party entitled to redeem the challenge.
func (c *Challenge) SellerID() kernel.UUID {
	return c.sellerID
}

// Code returns the 6-digit verification code.
func (c *Challenge) Code() string {
	return c.code
}

// Used reports whether the challenge was already redeemed.
func (c *Challenge) Used() bool {
	return c.used
}

// CreatedAt returns the issuance timestamp.
func (c *Challenge) CreatedAt() time.Time {
	return c.createdAt
}

// Redeem consumes the challenge.
//
// Business rules:
//   - Only the recorded seller may redeem
//   - The challenge must not have been redeemed before
//   - The entered code must match the stored code byte for byte
//
// On success the challenge is marked used; it can never be redeemed again.
func (c *Challenge) Redeem(sellerID kernel.UUID, enteredCode string) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	if !c.sellerID.IsEqual(sellerID) {
		return ErrSellerMismatch
	}

	if c.used {
		return ErrChallengeAlreadyUsed
	}

	if c.code != enteredCode {
		return ErrCodeMismatch
	}

	c.used = true
	return nil
}

func (c *Challenge) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *Challenge) setParties(buyerID, sellerID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), sellerID.Validate()); err != nil {
		return err
	}
	c.buyerID = buyerID
	c.sellerID = sellerID
	return nil
}

func (c *Challenge) setCode(code string) error {
	if len(code) != CodeLength {
		return errs.NewValueIsInvalidErrorWithCause("code is invalid",
			fmt.Errorf("code must be %d digits, got %d characters", CodeLength, len(code)))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("code is invalid",
				fmt.Errorf("code must contain only digits"))
		}
	}
	c.code = code
	return nil
}

package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrBeginDisputeReviewCommandIsNotConstructed = errors.New(
	"BeginDisputeReviewCommand must be created via NewBeginDisputeReviewCommand constructor",
)

// BeginDisputeReviewCommand marks a dispute as taken under arbiter review.
type BeginDisputeReviewCommand struct { //nolint:recvcheck //using for validation
	disputeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBeginDisputeReviewCommand creates a command to begin dispute review.
func NewBeginDisputeReviewCommand(disputeID kernel.UUID) (BeginDisputeReviewCommand, error) {
	cmd := BeginDisputeReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDisputeID(disputeID); err != nil {
		return BeginDisputeReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginDisputeReviewCommand) Validate() error {
	return c.guard.Validate(ErrBeginDisputeReviewCommandIsNotConstructed)
}

// DisputeID returns the dispute to take under review.
func (c BeginDisputeReviewCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

func (c *BeginDisputeReviewCommand) setDisputeID(disputeID kernel.UUID) error {
	if err := disputeID.Validate(); err != nil {
		return err
	}

	c.disputeID = disputeID
	return nil
}

package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrResolveDisputeCommandIsNotConstructed = errors.New(
		"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
	)
	ErrResolutionTextIsRequired = errors.New("resolution text is required")
)

// ResolveDisputeCommand represents an arbiter's verdict on a dispute,
// forcing the referenced escrow to release or refund.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID      kernel.UUID
	decision       dispute.Decision
	resolutionText string

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command to resolve a dispute.
// Validates the identifier, the decision and that the resolution text is not empty.
func NewResolveDisputeCommand(
	disputeID kernel.UUID,
	decision dispute.Decision,
	resolutionText string,
) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisputeID(disputeID),
		cmd.setDecision(decision),
		cmd.setResolutionText(resolutionText),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// DisputeID returns the dispute being resolved.
func (c ResolveDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// Decision returns the arbiter's verdict.
func (c ResolveDisputeCommand) Decision() dispute.Decision {
	return c.decision
}

// ResolutionText returns the verdict explanation to store on the dispute.
func (c ResolveDisputeCommand) ResolutionText() string {
	return c.resolutionText
}

func (c *ResolveDisputeCommand) setDisputeID(disputeID kernel.UUID) error {
	if err := disputeID.Validate(); err != nil {
		return err
	}

	c.disputeID = disputeID
	return nil
}

func (c *ResolveDisputeCommand) setDecision(decision dispute.Decision) error {
	if err := decision.Validate(); err != nil {
		return err
	}

	c.decision = decision
	return nil
}

func (c *ResolveDisputeCommand) setResolutionText(resolutionText string) error {
	if resolutionText == "" {
		return ErrResolutionTextIsRequired
	}

	c.resolutionText = resolutionText
	return nil
}

package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrFileDisputeCommandIsNotConstructed = errors.New(
		"FileDisputeCommand must be created via NewFileDisputeCommand constructor",
	)
	ErrDescriptionIsRequired = errors.New("description is required")
)

// FileDisputeCommand represents a party's request to open a dispute against a
// held escrow.
type FileDisputeCommand struct { //nolint:recvcheck //using for validation
	disputeID   kernel.UUID
	escrowID    kernel.UUID
	filerID     kernel.UUID
	description string

	guard guard.ConstructorGuard
}

// NewFileDisputeCommand creates a command to file a dispute.
// Validates identifiers and that the description is not empty.
func NewFileDisputeCommand(
	disputeID, escrowID, filerID kernel.UUID,
	description string,
) (FileDisputeCommand, error) {
	cmd := FileDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisputeID(disputeID),
		cmd.setEscrowID(escrowID),
		cmd.setFilerID(filerID),
		cmd.setDescription(description),
	); err != nil {
		return FileDisputeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FileDisputeCommand) Validate() error {
	return c.guard.Validate(ErrFileDisputeCommandIsNotConstructed)
}

// DisputeID returns the identifier the new dispute will carry.
func (c FileDisputeCommand) DisputeID() kernel.UUID {
	return c.disputeID
}

// EscrowID returns the escrow the dispute is filed against.
func (c FileDisputeCommand) EscrowID() kernel.UUID {
	return c.escrowID
}

// FilerID returns the party opening the dispute.
func (c FileDisputeCommand) FilerID() kernel.UUID {
	return c.filerID
}

// Description returns the filer's claim text.
func (c FileDisputeCommand) Description() string {
	return c.description
}

func (c *FileDisputeCommand) setDisputeID(disputeID kernel.UUID) error {
	if err := disputeID.Validate(); err != nil {
		return err
	}

	c.disputeID = disputeID
	return nil
}

func (c *FileDisputeCommand) setEscrowID(escrowID kernel.UUID) error {
	if err := escrowID.Validate(); err != nil {
		return err
	}

	c.escrowID = escrowID
	return nil
}

func (c *FileDisputeCommand) setFilerID(filerID kernel.UUID) error {
	if err := filerID.Validate(); err != nil {
		return err
	}

	c.filerID = filerID
	return nil
}

func (c *FileDisputeCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

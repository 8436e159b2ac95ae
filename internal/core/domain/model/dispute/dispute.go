// Package dispute contains the Dispute aggregate: a buyer or seller's claim
// against a held escrow, settled by an arbiter who forces the escrow to
// release or refund.
package dispute

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Decision is the arbiter's verdict on a dispute. It determines which
// terminal state the referenced escrow is driven to.
type Decision int

const (
	// DecisionUnknown represents an invalid or undefined decision.
	DecisionUnknown Decision = iota

	// DecisionRelease pays the escrowed amount out to the seller.
	DecisionRelease

	// DecisionRefund returns the escrowed amount to the buyer.
	DecisionRefund
)

// Validate checks if the Decision value is valid.
func (d Decision) Validate() error {
	if d != DecisionRelease && d != DecisionRefund {
		return errs.NewValueIsInvalidErrorWithCause("decision is invalid",
			fmt.Errorf("%d is not a valid decision", d))
	}
	return nil
}

// String returns the human-readable name of the decision. Implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case DecisionRelease:
		return "Release"
	case DecisionRefund:
		return "Refund"
	default:
		return "Unknown"
	}
}

// ErrDisputeIsNotConstructed is returned when a Dispute instance was not
// created through the NewDispute or RestoreDispute factory methods.
var ErrDisputeIsNotConstructed = errors.New("Dispute must be created via NewDispute or RestoreDispute")

// Dispute is the aggregate root for a claim against a held escrow.
// Filing is only possible while the escrow is Held; that gate belongs to the
// use case layer, which checks the escrow under a row lock before creating
// the dispute.
type Dispute struct {
	id             kernel.UUID
	escrowID       kernel.UUID
	filerID        kernel.UUID
	description    string
	status         Status
	openedAt       time.Time
	resolvedAt     *time.Time
	resolutionText *string

	isConstructed bool
}

// NewDispute creates a dispute in Open status.
func NewDispute(id, escrowID, filerID kernel.UUID, description string, openedAt time.Time) (*Dispute, error) {
	d := &Dispute{
		status:        Open,
		openedAt:      openedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setEscrowID(escrowID),
		d.setFilerID(filerID),
		d.setDescription(description),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDispute reconstructs a Dispute from persistence with its full state.
func RestoreDispute(
	id, escrowID, filerID kernel.UUID,
	description string,
	status Status,
	openedAt time.Time,
	resolvedAt *time.Time,
	resolutionText *string,
) (*Dispute, error) {
	d := &Dispute{
		openedAt:       openedAt,
		resolvedAt:     resolvedAt,
		resolutionText: resolutionText,
		isConstructed:  true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setEscrowID(escrowID),
		d.setFilerID(filerID),
		d.setDescription(description),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Dispute instance was properly constructed through a factory.
func (d *Dispute) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDisputeIsNotConstructed
	}
	return nil
}

// ID returns the dispute's unique identifier.
func (d *Dispute) ID() kernel.UUID {
	return d.id
}

// EscrowID returns the escrow the dispute was filed against.
func (d *Dispute) EscrowID() kernel.UUID {
	return d.escrowID
}

// FilerID returns the party who opened the dispute.
func (d *Dispute) FilerID() kernel.UUID {
	return d.filerID
}

// Description returns the filer's claim text.
func (d *Dispute) Description() string {
	return d.description
}

// Status returns the current dispute status.
func (d *Dispute) Status() Status {
	return d.status
}

// OpenedAt returns the filing timestamp.
func (d *Dispute) OpenedAt() time.Time {
	return d.openedAt
}

// ResolvedAt returns the resolution timestamp, or nil while unresolved.
func (d *Dispute) ResolvedAt() *time.Time {
	return d.resolvedAt
}

// ResolutionText returns the arbiter's verdict text, or nil while unresolved.
func (d *Dispute) ResolutionText() *string {
	return d.resolutionText
}

// BeginReview moves the dispute from Open to InProgress.
func (d *Dispute) BeginReview() error {
	status, err := d.status.BeginReview()
	if err != nil {
		return err
	}
	d.status = status
	return nil
}

// Resolve records the arbiter's verdict, stamping the resolution text and time.
// The caller is responsible for driving the referenced escrow to the matching
// terminal state in the same transaction.
func (d *Dispute) Resolve(resolutionText string, resolvedAt time.Time) error {
	if resolutionText == "" {
		return errs.NewValueIsRequiredError("resolutionText")
	}

	status, err := d.status.Resolve()
	if err != nil {
		return err
	}

	d.status = status
	d.resolutionText = &resolutionText
	d.resolvedAt = &resolvedAt
	return nil
}

// Close archives a resolved dispute.
func (d *Dispute) Close() error {
	status, err := d.status.Close()
	if err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Dispute) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dispute) setEscrowID(escrowID kernel.UUID) error {
	if err := escrowID.Validate(); err != nil {
		return err
	}
	d.escrowID = escrowID
	return nil
}

func (d *Dispute) setFilerID(filerID kernel.UUID) error {
	if err := filerID.Validate(); err != nil {
		return err
	}
	d.filerID = filerID
	return nil
}

func (d *Dispute) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	d.description = description
	return nil
}

func (d *Dispute) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

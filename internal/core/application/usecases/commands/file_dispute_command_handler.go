package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/dispute"
)

// FileDisputeCommandHandler opens a dispute against a held escrow.
//
// The escrow row is read under a row lock and must still be Held when the
// dispute is inserted. A concurrent release or refund either commits before
// the lock is taken, in which case filing fails, or waits behind it, in which
// case the dispute attaches first. A dispute can therefore never reference an
// escrow that already left Held.
type FileDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
}

// NewFileDisputeCommandHandler creates a handler for dispute filing.
// Requires a DisputeUoWFactory for transactional persistence.
func NewFileDisputeCommandHandler(uowFactory DisputeUoWFactory) FileDisputeCommandHandler {
	return FileDisputeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispute filing command.
func (h *FileDisputeCommandHandler) Handle(ctx context.Context, cmd FileDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	disputedEscrow, err := uow.EscrowRepository().GetForUpdate(ctx, cmd.EscrowID())
	if err != nil {
		return err
	}

	if err = disputedEscrow.Status().ValidateTransition(); err != nil {
		return err
	}

	newDispute, err := dispute.NewDispute(
		cmd.DisputeID(),
		cmd.EscrowID(),
		cmd.FilerID(),
		cmd.Description(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.DisputeRepository().Add(ctx, newDispute); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

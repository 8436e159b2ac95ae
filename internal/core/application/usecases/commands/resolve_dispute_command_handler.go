package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/dispute"
)

// ResolveDisputeCommandHandler applies an arbiter's verdict.
// The escrow transition and the dispute resolution are coupled: the escrow
// is driven first, and if it already left Held the whole resolution fails.
// The escrow write is a test-and-set on the Held row, so a resolution racing
// a code redemption has exactly one winner.
type ResolveDisputeCommandHandler struct {
	uowFactory DisputeUoWFactory
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolution.
// Requires a DisputeUoWFactory for transactional persistence.
func NewResolveDisputeCommandHandler(uowFactory DisputeUoWFactory) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispute resolution command.
// Fails with a state conflict if the dispute is already Resolved or Closed,
// or if the escrow is no longer Held.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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

	disputeRepo := uow.DisputeRepository()
	resolvedDispute, err := disputeRepo.Get(ctx, cmd.DisputeID())
	if err != nil {
		return err
	}

	disputedEscrow, err := uow.EscrowRepository().Get(ctx, resolvedDispute.EscrowID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	switch cmd.Decision() {
	case dispute.DecisionRelease:
		err = disputedEscrow.Release(now)
	case dispute.DecisionRefund:
		err = disputedEscrow.Refund(now)
	default:
		err = cmd.Decision().Validate()
	}
	if err != nil {
		return err
	}

	if err = uow.EscrowRepository().Update(ctx, disputedEscrow); err != nil {
		return err
	}

	if err = resolvedDispute.Resolve(cmd.ResolutionText(), now); err != nil {
		return err
	}

	if err = disputeRepo.Update(ctx, resolvedDispute); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
)

// BeginDisputeReviewCommandHandler moves a dispute from Open to InProgress.
type BeginDisputeReviewCommandHandler struct {
	uowFactory DisputeUoWFactory
}

// NewBeginDisputeReviewCommandHandler creates a handler for taking disputes
// under review. Requires a DisputeUoWFactory for transactional persistence.
func NewBeginDisputeReviewCommandHandler(uowFactory DisputeUoWFactory) BeginDisputeReviewCommandHandler {
	return BeginDisputeReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command. Fails with a state conflict unless the
// dispute is currently Open.
func (h *BeginDisputeReviewCommandHandler) Handle(ctx context.Context, cmd BeginDisputeReviewCommand) error {
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
	reviewedDispute, err := disputeRepo.Get(ctx, cmd.DisputeID())
	if err != nil {
		return err
	}

	if err = reviewedDispute.BeginReview(); err != nil {
		return err
	}

	if err = disputeRepo.Update(ctx, reviewedDispute); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

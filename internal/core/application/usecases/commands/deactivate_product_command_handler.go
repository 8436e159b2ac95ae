package commands

import (
	"context"

	"marketplace/internal/pkg/errs"
)

// DeactivateProductCommandHandler withdraws a listing on its seller's behalf.
// Only an Active listing can be withdrawn; a Sold one is already off the
// market and stays that way.
type DeactivateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

// NewDeactivateProductCommandHandler creates a handler for listing withdrawal.
// Requires a ProductUoWFactory for transactional persistence.
func NewDeactivateProductCommandHandler(uowFactory ProductUoWFactory) DeactivateProductCommandHandler {
	return DeactivateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deactivation command. Fails with an authorization
// error when the caller is not the listing's seller, and with a state
// conflict when the listing is not Active.
func (h *DeactivateProductCommandHandler) Handle(ctx context.Context, cmd DeactivateProductCommand) error {
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

	listing, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if !listing.SellerID().IsEqual(cmd.SellerID()) {
		return errs.NewAuthorizationError("only the seller may withdraw the listing")
	}

	if err = listing.Deactivate(); err != nil {
		return err
	}

	if err = uow.ProductRepository().Update(ctx, listing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

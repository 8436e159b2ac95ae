package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rating"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// AddRatingCommandHandler records feedback on a settled order.
// A rating is only accepted once the order is Delivered and its escrow
// Released; the (order, rater) uniqueness is enforced by the store.
type AddRatingCommandHandler struct {
	uowFactory RatingUoWFactory
}

// NewAddRatingCommandHandler creates a handler for rating submission.
// Requires a RatingUoWFactory for transactional persistence.
func NewAddRatingCommandHandler(uowFactory RatingUoWFactory) AddRatingCommandHandler {
	return AddRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
//
// Failure modes: order not found; order not Delivered or escrow not Released
// (state conflict); rater not a party to the order (authorization); second
// rating by the same rater (state conflict).
func (h *AddRatingCommandHandler) Handle(ctx context.Context, cmd AddRatingCommand) error {
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

	ratedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if ratedOrder.Status() != order.Delivered {
		return errs.NewStateConflictError("order is not delivered")
	}

	if err = validateRatingParties(ratedOrder, cmd.RaterID(), cmd.RatedID()); err != nil {
		return err
	}

	settledEscrow, err := uow.EscrowRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if settledEscrow.Status() != escrow.Released {
		return errs.NewStateConflictError("escrow is not released")
	}

	newRating, err := rating.NewRating(
		kernel.NewUUID(),
		cmd.OrderID(),
		cmd.RaterID(),
		cmd.RatedID(),
		cmd.Value(),
		cmd.Comment(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.RatingRepository().Add(ctx, newRating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("duplicate rating", err)
		}
		return err
	}

	return uow.Commit(ctx)
}

// validateRatingParties requires the rater and the rated to be the two sides
// of the order, in either direction.
func validateRatingParties(ratedOrder *order.Order, raterID, ratedID kernel.UUID) error {
	buyerRatesSeller := raterID.IsEqual(ratedOrder.BuyerID()) && ratedID.IsEqual(ratedOrder.SellerID())
	sellerRatesBuyer := raterID.IsEqual(ratedOrder.SellerID()) && ratedID.IsEqual(ratedOrder.BuyerID())

	if !buyerRatesSeller && !sellerRatesBuyer {
		return errs.NewAuthorizationError("rater and rated must be the order's parties")
	}
	return nil
}

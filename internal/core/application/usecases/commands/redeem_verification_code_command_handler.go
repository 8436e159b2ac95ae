package commands

import (
	"context"
	"time"
)

// RedeemVerificationCodeCommandHandler settles an order at the handoff.
// In one transaction it consumes the challenge, releases the escrow and
// advances the order to Delivered. All three land together or not at all.
//
// The escrow release is persisted as a test-and-set on the Held row, so a
// redemption racing a dispute resolution has exactly one winner; the loser's
// transaction rolls back, leaving the challenge unused.
type RedeemVerificationCodeCommandHandler struct {
	uowFactory RedeemChallengeUoWFactory
}

// NewRedeemVerificationCodeCommandHandler creates a handler for code redemption.
// Requires a RedeemChallengeUoWFactory for transactional persistence.
func NewRedeemVerificationCodeCommandHandler(
	uowFactory RedeemChallengeUoWFactory,
) RedeemVerificationCodeCommandHandler {
	return RedeemVerificationCodeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the code redemption command.
//
// Failure modes, checked in order: no challenge ever issued for the order
// (not found), seller mismatch (authorization), challenge already used or
// code mismatch (state conflict), escrow no longer Held (state conflict).
// The lookup includes redeemed challenges, so a second redemption of a
// consumed code reports the conflict rather than not-found.
func (h *RedeemVerificationCodeCommandHandler) Handle(ctx context.Context, cmd RedeemVerificationCodeCommand) error {
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

	challengeRepo := uow.ChallengeRepository()
	challenge, err := challengeRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = challenge.Redeem(cmd.SellerID(), cmd.Code()); err != nil {
		return err
	}

	if err = challengeRepo.Update(ctx, challenge); err != nil {
		return err
	}

	escrowRepo := uow.EscrowRepository()
	heldEscrow, err := escrowRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = heldEscrow.Release(time.Now().UTC()); err != nil {
		return err
	}

	if err = escrowRepo.Update(ctx, heldEscrow); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	settledOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = settledOrder.Deliver(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, settledOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

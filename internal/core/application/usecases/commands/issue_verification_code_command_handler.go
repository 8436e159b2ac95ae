package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// maxCodeAttempts bounds the retry loop on code collisions. With a 6-digit
// space and the unused-code population this service sees, exhausting the
// bound means something is broken, not unlucky.
const maxCodeAttempts = 10

// IssueVerificationCodeCommandHandler issues the one-time handoff code for an
// order. Only the order's buyer may request it; the seller learns the code at
// the handoff, never from this endpoint. Issuance is idempotent per order:
// while an unused challenge exists, its code is returned instead of minting a
// new one.
//
// Uniqueness of active codes is enforced by the store, not by a read-then-check:
// each attempt inserts the candidate and treats a duplicate key error as a
// collision. A failed insert aborts its transaction, so every attempt
// runs in a transaction of its own.
type IssueVerificationCodeCommandHandler struct {
	uowFactory IssueChallengeUoWFactory
}

// NewIssueVerificationCodeCommandHandler creates a handler for code issuance.
// Requires an IssueChallengeUoWFactory for transactional persistence.
func NewIssueVerificationCodeCommandHandler(uowFactory IssueChallengeUoWFactory) IssueVerificationCodeCommandHandler {
	return IssueVerificationCodeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the code issuance command and returns the 6-digit code.
// Fails with a resource exhausted error if maxCodeAttempts collisions occur
// in a row.
func (h *IssueVerificationCodeCommandHandler) Handle(
	ctx context.Context,
	cmd IssueVerificationCodeCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	challengeOrder, existingCode, err := h.readOrderAndExistingCode(ctx, cmd.OrderID(), cmd.BuyerID())
	if err != nil {
		return "", err
	}
	if existingCode != "" {
		return existingCode, nil
	}

	for range maxCodeAttempts {
		code, err := verification.NewRandomCode()
		if err != nil {
			return "", err
		}

		challenge, err := verification.NewChallenge(
			challengeOrder.ID(),
			challengeOrder.BuyerID(),
			challengeOrder.SellerID(),
			code,
			time.Now().UTC(),
		)
		if err != nil {
			return "", err
		}

		err = h.insertChallenge(ctx, challenge)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}

		// The duplicate is either a code collision or a concurrent issuer
		// winning the per-order slot. In the latter case return their code.
		winnerCode, winnerErr := h.readExistingCode(ctx, cmd.OrderID())
		if winnerErr != nil {
			return "", winnerErr
		}
		if winnerCode != "" {
			return winnerCode, nil
		}
	}

	return "", errs.NewResourceExhaustedError("verification code space")
}

func (h *IssueVerificationCodeCommandHandler) readOrderAndExistingCode(
	ctx context.Context,
	orderID, buyerID kernel.UUID,
) (*order.Order, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challengeOrder, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	if !challengeOrder.BuyerID().IsEqual(buyerID) {
		return nil, "", errs.NewAuthorizationError("only the order's buyer may request the code")
	}

	if challengeOrder.Status() != order.Confirmed {
		return nil, "", errs.NewStateConflictError("order is not awaiting handoff")
	}

	existing, err := uow.ChallengeRepository().GetUnusedByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return challengeOrder, "", uow.Commit(ctx)
		}
		return nil, "", err
	}

	code := existing.Code()
	return challengeOrder, code, uow.Commit(ctx)
}

func (h *IssueVerificationCodeCommandHandler) readExistingCode(
	ctx context.Context,
	orderID kernel.UUID,
) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.ChallengeRepository().GetUnusedByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return "", nil
		}
		return "", err
	}

	return existing.Code(), uow.Commit(ctx)
}

func (h *IssueVerificationCodeCommandHandler) insertChallenge(
	ctx context.Context,
	challenge *verification.Challenge,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ChallengeRepository().Add(ctx, challenge); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

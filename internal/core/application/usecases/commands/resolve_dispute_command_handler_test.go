package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/dispute"
	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func heldEscrow(t *testing.T) *escrow.Escrow {
	t.Helper()
	e, err := escrow.NewEscrow(kernel.NewUUID(), kernel.NewUUID(), decimal.NewFromFloat(75), time.Now())
	require.NoError(t, err)
	return e
}

func openDispute(t *testing.T, escrowID kernel.UUID) *dispute.Dispute {
	t.Helper()
	d, err := dispute.NewDispute(kernel.NewUUID(), escrowID, kernel.NewUUID(), "item was damaged", time.Now())
	require.NoError(t, err)
	return d
}

func TestResolveDisputeCommandHandler_Handle_RefundDecision(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	d := openDispute(t, disputedEscrow.ID())
	cmd, err := commands.NewResolveDisputeCommand(d.ID(), dispute.DecisionRefund, "refund granted")
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Get", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		escrowRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *escrow.Escrow) bool {
			return e.Status() == escrow.Refunded
		})).Return(nil).Once(),
		disputeRepo.On("Update", mock.Anything, mock.MatchedBy(func(resolved *dispute.Dispute) bool {
			return resolved.Status() == dispute.Resolved &&
				resolved.ResolutionText() != nil &&
				*resolved.ResolutionText() == "refund granted"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	disputeRepo.AssertExpectations(t)
	escrowRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_ReleaseDecision(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	d := openDispute(t, disputedEscrow.ID())
	cmd, err := commands.NewResolveDisputeCommand(d.ID(), dispute.DecisionRelease, "seller was right")
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Get", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		escrowRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *escrow.Escrow) bool {
			return e.Status() == escrow.Released
		})).Return(nil).Once(),
		disputeRepo.On("Update", mock.Anything, mock.AnythingOfType("*dispute.Dispute")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_EscrowAlreadyTerminal(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	d := openDispute(t, disputedEscrow.ID())
	require.NoError(t, disputedEscrow.Release(time.Now()))
	cmd, err := commands.NewResolveDisputeCommand(d.ID(), dispute.DecisionRefund, "refund granted")
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Get", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	require.Equal(t, dispute.Open, d.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_DisputeAlreadyResolved(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	d := openDispute(t, disputedEscrow.ID())
	require.NoError(t, d.Resolve("first verdict", time.Now()))
	cmd, err := commands.NewResolveDisputeCommand(d.ID(), dispute.DecisionRefund, "second verdict")
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Get", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		escrowRepo.On("Update", mock.Anything, mock.AnythingOfType("*escrow.Escrow")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.Contains(t, err.Error(), "dispute is already resolved")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestFileDisputeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	cmd, err := commands.NewFileDisputeCommand(kernel.NewUUID(), disputedEscrow.ID(), kernel.NewUUID(),
		"item was damaged")
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("GetForUpdate", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Add", mock.Anything, mock.MatchedBy(func(d *dispute.Dispute) bool {
			return d.ID().IsEqual(cmd.DisputeID()) &&
				d.EscrowID().IsEqual(disputedEscrow.ID()) &&
				d.Status() == dispute.Open
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFileDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	disputeRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestFileDisputeCommandHandler_Handle_EscrowNotHeld(t *testing.T) {
	ctx := t.Context()
	disputedEscrow := heldEscrow(t)
	require.NoError(t, disputedEscrow.Refund(time.Now()))
	cmd, err := commands.NewFileDisputeCommand(kernel.NewUUID(), disputedEscrow.ID(), kernel.NewUUID(),
		"item was damaged")
	require.NoError(t, err)

	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("GetForUpdate", mock.Anything, disputedEscrow.ID()).Return(disputedEscrow, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewFileDisputeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestBeginDisputeReviewCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	d := openDispute(t, kernel.NewUUID())
	cmd, err := commands.NewBeginDisputeReviewCommand(d.ID())
	require.NoError(t, err)

	disputeRepo := new(MockDisputeRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DisputeRepository").Return(disputeRepo).Once(),
		disputeRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once(),
		disputeRepo.On("Update", mock.Anything, mock.MatchedBy(func(reviewed *dispute.Dispute) bool {
			return reviewed.Status() == dispute.InProgress
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDisputeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBeginDisputeReviewCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
}

package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reservedProduct(t *testing.T, sellerID kernel.UUID, unitPrice decimal.Decimal) *product.Product {
	t.Helper()
	p, err := product.RestoreProduct(kernel.NewUUID(), sellerID, kernel.NewUUID(),
		"textbook", "", decimal.Zero, unitPrice, 3, product.Active)
	require.NoError(t, err)
	return p
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()
	sellerID := kernel.NewUUID()
	unitPrice := decimal.NewFromFloat(120.50)
	cmd, err := commands.NewPlaceOrderCommand(orderID, kernel.NewUUID(), buyerID, 2, kernel.NewUUID(), nil)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("ReserveStock", mock.Anything, cmd.ProductID(), 2).
			Return(reservedProduct(t, sellerID, unitPrice), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID().IsEqual(orderID) &&
				o.BuyerID().IsEqual(buyerID) &&
				o.SellerID().IsEqual(sellerID) &&
				o.Status() == order.Confirmed
		})).Return(nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *escrow.Escrow) bool {
			return e.OrderID().IsEqual(orderID) &&
				e.Status() == escrow.Held &&
				e.Amount().Equal(decimal.NewFromFloat(241.00))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	escrowRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	factory := new(MockPlaceOrderUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory)

	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		5, kernel.NewUUID(), nil)
	require.NoError(t, err)

	stockErr := errs.NewStateConflictError("insufficient stock")
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("ReserveStock", mock.Anything, cmd.ProductID(), 5).Return(nil, stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrStateConflict)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_SelfTrade(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), buyerID,
		1, kernel.NewUUID(), nil)
	require.NoError(t, err)

	// the reserved product belongs to the buyer
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("ReserveStock", mock.Anything, cmd.ProductID(), 1).
			Return(reservedProduct(t, buyerID, decimal.NewFromFloat(10)), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrSelfTradeNotAllowed)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_EscrowAddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		1, kernel.NewUUID(), nil)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	escrowRepo := new(MockEscrowRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("ReserveStock", mock.Anything, cmd.ProductID(), 1).
			Return(reservedProduct(t, kernel.NewUUID(), decimal.NewFromFloat(10)), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("EscrowRepository").Return(escrowRepo).Once(),
		escrowRepo.On("Add", mock.Anything, mock.AnythingOfType("*escrow.Escrow")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

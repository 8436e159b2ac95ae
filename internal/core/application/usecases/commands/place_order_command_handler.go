package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Within one transaction it debits the product stock, records the order with
// its pickup collection, and opens a held escrow for the full amount. A
// failure at any step rolls all of it back, so a buyer can never end up with
// reserved stock but no order, or an order with no escrow.
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires a PlaceOrderUoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory PlaceOrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
//
// The stock debit goes through ProductRepository.ReserveStock, whose
// conditional update is the only oversell gate: there is no separate
// read-check-write sequence anywhere on this path. The escrow amount is
// quantity times the product's unit price, rounded to cents.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
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

	reserved, err := uow.ProductRepository().ReserveStock(ctx, cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return err
	}

	pickup, err := order.NewPickupCollection(cmd.PickupPointID(), cmd.ScheduledAt())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.ProductID(),
		reserved.SellerID(),
		cmd.BuyerID(),
		cmd.Quantity(),
		pickup,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	amount := reserved.UnitPrice().Mul(decimal.NewFromInt(int64(cmd.Quantity()))).Round(2)
	newEscrow, err := escrow.NewEscrow(kernel.NewUUID(), newOrder.ID(), amount, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.EscrowRepository().Add(ctx, newEscrow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

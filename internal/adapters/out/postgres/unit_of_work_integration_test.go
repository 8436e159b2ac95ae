package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/challengerepo"
	"marketplace/internal/adapters/out/postgres/disputerepo"
	"marketplace/internal/adapters/out/postgres/escrowrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/ratingrepo"
	"marketplace/internal/core/domain/model/escrow"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work against
// a real PostgreSQL database, including the multi-aggregate settlement flows.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.PickupCollectionDTO{},
		&escrowrepo.EscrowDTO{},
		&challengerepo.ChallengeDTO{},
		&disputerepo.DisputeDTO{},
		&ratingrepo.RatingDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE products, orders, pickup_collections, escrows, verification_challenges, disputes, ratings",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.EscrowRepository())
	suite.NotNil(uow2.ChallengeRepository())
	suite.NotNil(uow2.DisputeRepository())
	suite.NotNil(uow2.RatingRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)

	err = uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_SettlementWorkflow walks an order from stock reservation
// through escrow release: reserve and place in one transaction, issue a
// verification code, then redeem it so the challenge burns, the escrow
// releases and the order is delivered atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SettlementWorkflow() {
	ctx := context.Background()
	listing := suite.seedProduct(3)

	buyerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	// Place the order.
	placeUow := suite.factory.Create()
	suite.Require().NoError(placeUow.Begin(ctx))

	reserved, err := placeUow.ProductRepository().ReserveStock(ctx, listing.ID(), 2)
	suite.Require().NoError(err)
	suite.Equal(1, reserved.Quantity())

	pickup, err := order.NewPickupCollection(kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	placed, err := order.NewOrder(
		orderID, listing.ID(), reserved.SellerID(), buyerID, 2, pickup,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(placeUow.OrderRepository().Add(ctx, placed))

	amount := reserved.UnitPrice().Mul(decimal.NewFromInt(2)).Round(2)
	held, err := escrow.NewEscrow(kernel.NewUUID(), orderID, amount,
		time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(placeUow.EscrowRepository().Add(ctx, held))

	suite.Require().NoError(placeUow.Commit(ctx))

	// Issue the handoff code.
	issueUow := suite.factory.Create()
	challenge, err := verification.NewChallenge(
		orderID, buyerID, reserved.SellerID(), "042137",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(issueUow.ChallengeRepository().Add(ctx, challenge))

	// Redeem it: one transaction settles all three aggregates.
	redeemUow := suite.factory.Create()
	suite.Require().NoError(redeemUow.Begin(ctx))

	active, err := redeemUow.ChallengeRepository().GetUnusedByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(active.Redeem(reserved.SellerID(), "042137"))
	suite.Require().NoError(redeemUow.ChallengeRepository().Update(ctx, active))

	heldEscrow, err := redeemUow.EscrowRepository().GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(heldEscrow.Release(time.Now().UTC().Truncate(time.Microsecond)))
	suite.Require().NoError(redeemUow.EscrowRepository().Update(ctx, heldEscrow))

	confirmed, err := redeemUow.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(confirmed.Deliver())
	suite.Require().NoError(redeemUow.OrderRepository().Update(ctx, confirmed))

	suite.Require().NoError(redeemUow.Commit(ctx))

	// Verify the settled state.
	verifyUow := suite.factory.Create()

	settledOrder, err := verifyUow.OrderRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, settledOrder.Status())

	settledEscrow, err := verifyUow.EscrowRepository().GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(escrow.Released, settledEscrow.Status())
	suite.True(settledEscrow.Amount().Equal(amount))

	_, err = verifyUow.ChallengeRepository().GetUnusedByOrderID(ctx, orderID)
	suite.Require().Error(err, "Redeemed challenge should no longer be active")
}

// TestUnitOfWork_WorkflowRollback verifies that a failed placement leaves no
// trace: the stock debit and the order row vanish together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowRollback() {
	ctx := context.Background()
	listing := suite.seedProduct(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	reserved, err := uow.ProductRepository().ReserveStock(ctx, listing.ID(), 2)
	suite.Require().NoError(err)

	pickup, err := order.NewPickupCollection(kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	orderID := kernel.NewUUID()
	placed, err := order.NewOrder(
		orderID, listing.ID(), reserved.SellerID(), kernel.NewUUID(), 2, pickup,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, placed))

	suite.Require().NoError(uow.Rollback(ctx))

	verifyUow := suite.factory.Create()

	persisted, err := verifyUow.ProductRepository().Get(ctx, listing.ID())
	suite.Require().NoError(err)
	suite.Equal(5, persisted.Quantity(), "Rolled back reservation should not debit stock")

	_, err = verifyUow.OrderRepository().Get(ctx, orderID)
	suite.Require().Error(err, "Rolled back order should not exist")
}

// seedProduct commits an Active listing outside any test transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedProduct(quantity int) *product.Product {
	listing, err := product.NewProduct(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Mini Fridge",
		"Dorm size, barely used",
		decimal.NewFromFloat(90.00),
		decimal.NewFromFloat(75.00),
		quantity,
	)
	suite.Require().NoError(err)

	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, listing))
	suite.Require().NoError(uow.Commit(ctx))

	return listing
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

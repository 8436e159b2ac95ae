package cmd

import (
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeactivateProductCommandHandler() commands.DeactivateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateIssueVerificationCodeCommandHandler() commands.IssueVerificationCodeCommandHandler {
	var f commands.IssueChallengeUoWFactory = FuncIssueChallengeUoWFactory(func() commands.IssueChallengeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueVerificationCodeCommandHandler(f)
}

func (c *CompositionRoot) CreateRedeemVerificationCodeCommandHandler() commands.RedeemVerificationCodeCommandHandler {
	var f commands.RedeemChallengeUoWFactory = FuncRedeemChallengeUoWFactory(func() commands.RedeemChallengeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRedeemVerificationCodeCommandHandler(f)
}

func (c *CompositionRoot) CreateFileDisputeCommandHandler() commands.FileDisputeCommandHandler {
	var f commands.DisputeUoWFactory = FuncDisputeUoWFactory(func() commands.DisputeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFileDisputeCommandHandler(f)
}

func (c *CompositionRoot) CreateBeginDisputeReviewCommandHandler() commands.BeginDisputeReviewCommandHandler {
	var f commands.DisputeUoWFactory = FuncDisputeUoWFactory(func() commands.DisputeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBeginDisputeReviewCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() commands.ResolveDisputeCommandHandler {
	var f commands.DisputeUoWFactory = FuncDisputeUoWFactory(func() commands.DisputeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveDisputeCommandHandler(f)
}

func (c *CompositionRoot) CreateAddRatingCommandHandler() commands.AddRatingCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddRatingCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveProductsQueryHandler() queries.GetActiveProductsQueryHandler {
	return queries.NewGetActiveProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMarketplaceStatsQueryHandler() queries.GetMarketplaceStatsQueryHandler {
	return queries.NewGetMarketplaceStatsQueryHandler(c.gormDB)
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncIssueChallengeUoWFactory func() commands.IssueChallengeUoW

func (f FuncIssueChallengeUoWFactory) Create() commands.IssueChallengeUoW {
	return f()
}

type FuncRedeemChallengeUoWFactory func() commands.RedeemChallengeUoW

func (f FuncRedeemChallengeUoWFactory) Create() commands.RedeemChallengeUoW {
	return f()
}

type FuncDisputeUoWFactory func() commands.DisputeUoW

func (f FuncDisputeUoWFactory) Create() commands.DisputeUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EscrowRepoFactory provides access to the escrow repository within a transaction.
	EscrowRepoFactory interface {
		EscrowRepository() ports.EscrowRepository
	}

	// ChallengeRepoFactory provides access to the challenge repository within a transaction.
	ChallengeRepoFactory interface {
		ChallengeRepository() ports.ChallengeRepository
	}

	// DisputeRepoFactory provides access to the dispute repository within a transaction.
	DisputeRepoFactory interface {
		DisputeRepository() ports.DisputeRepository
	}

	// RatingRepoFactory provides access to the rating repository within a transaction.
	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	// ProductUoW spans reads and writes of a single listing.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// PlaceOrderUoW spans the stock debit, the order insert and the escrow
	// open. All three commit or roll back together.
	PlaceOrderUoW interface {
		TxManager
		ProductRepoFactory
		OrderRepoFactory
		EscrowRepoFactory
	}

	// PlaceOrderUoWFactory creates new place-order unit of work instances.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// IssueChallengeUoW spans the order read and the challenge insert.
	IssueChallengeUoW interface {
		TxManager
		OrderRepoFactory
		ChallengeRepoFactory
	}

	// IssueChallengeUoWFactory creates new challenge-issuance unit of work instances.
	IssueChallengeUoWFactory interface {
		Create() IssueChallengeUoW
	}

	// RedeemChallengeUoW spans the challenge consumption, the escrow release
	// and the order delivery. Either all three land or none do.
	RedeemChallengeUoW interface {
		TxManager
		ChallengeRepoFactory
		EscrowRepoFactory
		OrderRepoFactory
	}

	// RedeemChallengeUoWFactory creates new challenge-redemption unit of work instances.
	RedeemChallengeUoWFactory interface {
		Create() RedeemChallengeUoW
	}

	// DisputeUoW spans dispute writes together with the escrow they concern.
	// Filing locks the escrow row; resolution drives the escrow transition.
	DisputeUoW interface {
		TxManager
		DisputeRepoFactory
		EscrowRepoFactory
	}

	// DisputeUoWFactory creates new dispute unit of work instances.
	DisputeUoWFactory interface {
		Create() DisputeUoW
	}

	// RatingUoW spans the settlement-state reads and the rating insert.
	RatingUoW interface {
		TxManager
		OrderRepoFactory
		EscrowRepoFactory
		RatingRepoFactory
	}

	// RatingUoWFactory creates new rating unit of work instances.
	RatingUoWFactory interface {
		Create() RatingUoW
	}
)

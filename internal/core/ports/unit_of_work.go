package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ProductRepository returns a ProductRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	ProductRepository() ProductRepository

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	OrderRepository() OrderRepository

	// EscrowRepository returns an EscrowRepository instance bound to the current transaction.
	EscrowRepository() EscrowRepository

	// ChallengeRepository returns a ChallengeRepository instance bound to the current transaction.
	ChallengeRepository() ChallengeRepository

	// DisputeRepository returns a DisputeRepository instance bound to the current transaction.
	DisputeRepository() DisputeRepository

	// RatingRepository returns a RatingRepository instance bound to the current transaction.
	RatingRepository() RatingRepository
}

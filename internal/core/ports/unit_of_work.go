package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command.
// The creator of a UnitOfWork owns its transaction: it calls Begin once and
// ends it with exactly one Commit or Rollback. Rollback after Commit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Repositories below use the transaction started by Begin.
	OrderRepository() OrderRepository
	InventoryRepository() InventoryRepository
	AuditLog() AuditLog
}

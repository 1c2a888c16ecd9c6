// Package ports defines the persistence contracts of the order core.
// Implementations are bound to a UnitOfWork so that every call made while
// updating an order shares one transaction.
package ports

import (
	"context"

	"backoffice/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates and their history.
type OrderRepository interface {
	// LoadJoinedState reads the order, its creator and every order line in one
	// query, locking the order row until the transaction ends.
	// Returns an ObjectNotFoundError when the order does not exist.
	LoadJoinedState(ctx context.Context, orderID int64) (*order.Order, error)

	// UpdateItem overwrites source, quantity and item total of one line of orderID.
	UpdateItem(ctx context.Context, orderID int64, item order.Item) error

	// PersistOrderAndHistory writes status, total and comments of the order
	// and appends an UPDATED history entry authored by actorID.
	// Returns the id of the history entry.
	PersistOrderAndHistory(ctx context.Context, o *order.Order, actorID int64, comment string) (int64, error)
}

package ports

import (
	"context"

	"backoffice/internal/core/domain/model/inventory"
)

// InventoryRepository reads and writes stock records.
// Reads lock the returned record until the transaction ends.
type InventoryRepository interface {
	// Get returns the record with the given id or an ObjectNotFoundError.
	Get(ctx context.Context, inventoryID int64) (*inventory.Record, error)

	// GetByStoreAndProduct returns the record of productID at storeID.
	// A missing record is reported as (nil, nil).
	GetByStoreAndProduct(ctx context.Context, storeID, productID int64) (*inventory.Record, error)

	// Edit sets the quantity of an existing record on behalf of actorID.
	Edit(ctx context.Context, inventoryID int64, quantity int, actorID int64) error

	// AssignToStore creates a record for productID at storeID holding quantity
	// and returns its id.
	AssignToStore(ctx context.Context, productID, storeID int64, quantity int, actorID int64) (int64, error)
}

package queries

import (
	"errors"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrGetLowStockQueryIsNotConstructed = errors.New(
	"GetLowStockQuery must be created via NewGetLowStockQuery constructor",
)

// GetLowStockQuery lists inventory records whose quantity is at or below threshold.
type GetLowStockQuery struct {
	threshold int
	guard     guard.ConstructorGuard
}

func NewGetLowStockQuery(threshold int) (GetLowStockQuery, error) {
	if threshold < 0 {
		return GetLowStockQuery{}, errs.NewValueIsOutOfRangeError("threshold", threshold, 0, "unbounded")
	}
	return GetLowStockQuery{threshold: threshold, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLowStockQuery) Threshold() int {
	return q.threshold
}

func (q GetLowStockQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockQueryIsNotConstructed)
}

type GetLowStockQueryResponse struct {
	InventoryID int64
	ProductID   int64
	ProductName string
	StoreID     int64
	StoreName   string
	Quantity    int
}

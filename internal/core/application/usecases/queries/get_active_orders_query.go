package queries

import (
	"errors"
	"time"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists orders that are neither delivered nor cancelled,
// optionally restricted to one location.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(nil)
//	if err != nil {
//	    return err
//	}
//	orders, err := NewGetActiveOrdersQueryHandler(db).Handle(ctx, query)
type GetActiveOrdersQuery struct {
	storeID *int64
	guard   guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(storeID *int64) (GetActiveOrdersQuery, error) {
	if storeID != nil && *storeID <= 0 {
		return GetActiveOrdersQuery{}, errs.NewValueIsOutOfRangeError("storeID", *storeID, 1, "unbounded")
	}
	return GetActiveOrdersQuery{storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

// StoreID is nil when orders of every location are requested.
func (q GetActiveOrdersQuery) StoreID() *int64 {
	return q.storeID
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

type GetActiveOrdersQueryResponse struct {
	ID         int64
	StoreID    int64
	StoreName  string
	Status     string
	OrderTotal decimal.Decimal
	ItemCount  int
	CreatedAt  time.Time
}

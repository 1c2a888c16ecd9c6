// Package inventory models stock of one product at one location.
package inventory

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New("inventory record must be created via RestoreRecord")

// Record is the stock of one product at one store or warehouse.
// Quantity never drops below zero.
type Record struct {
	id        int64
	productID int64
	storeID   int64
	quantity  kernel.Quantity
	guard     guard.ConstructorGuard
}

// RestoreRecord rebuilds a record loaded from storage.
func RestoreRecord(id, productID, storeID int64, quantity int) (*Record, error) {
	var errList []error
	if id <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("inventoryID", id, 1, "unbounded"))
	}
	if productID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("productID", productID, 1, "unbounded"))
	}
	if storeID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("storeID", storeID, 1, "unbounded"))
	}
	q, err := kernel.NewQuantity(quantity)
	if err != nil {
		errList = append(errList, err)
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return &Record{
		id:        id,
		productID: productID,
		storeID:   storeID,
		quantity:  q,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() int64 {
	return r.id
}

func (r *Record) ProductID() int64 {
	return r.productID
}

func (r *Record) StoreID() int64 {
	return r.storeID
}

func (r *Record) Quantity() kernel.Quantity {
	return r.quantity
}

// Deduct removes q units, failing with an InsufficientStockError when the
// record holds fewer. The record is unchanged on failure.
func (r *Record) Deduct(q kernel.Quantity) error {
	if r.quantity.LessThan(q) {
		return errs.NewInsufficientStockError(r.productID, r.storeID, r.quantity.Int(), q.Int())
	}
	left, err := r.quantity.Sub(q)
	if err != nil {
		return err
	}
	r.quantity = left
	return nil
}

// Add puts q units back on the shelf.
func (r *Record) Add(q kernel.Quantity) {
	r.quantity = r.quantity.Add(q)
}

// IsLow reports whether the stock is at or below threshold.
func (r *Record) IsLow(threshold int) bool {
	return r.quantity.Int() <= threshold
}

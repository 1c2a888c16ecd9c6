package order

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

// Source tells where an order line is fulfilled from.
type Source string

const (
	// SourceWarehouse lines are drawn from the central warehouse stock on approval.
	SourceWarehouse Source = "warehouse"
	SourceStore     Source = "store"
)

// ParseSource accepts any non-blank source name; known names are normalized.
func ParseSource(s string) (Source, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return "", errs.NewValueIsRequiredError("source")
	}
	switch strings.ToLower(name) {
	case string(SourceWarehouse):
		return SourceWarehouse, nil
	case string(SourceStore):
		return SourceStore, nil
	}
	return Source(name), nil
}

func (s Source) String() string {
	return string(s)
}

// Item is a single order line.
type Item struct {
	id        int64
	productID int64
	source    Source
	quantity  kernel.Quantity
	total     kernel.Money
}

// NewItem validates and builds an order line as loaded from storage.
func NewItem(id, productID int64, source Source, quantity int, total kernel.Money) (Item, error) {
	var errList []error
	if id <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("orderItemID", id, 1, "unbounded"))
	}
	if productID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("productID", productID, 1, "unbounded"))
	}
	if source == "" {
		errList = append(errList, errs.NewValueIsRequiredError("source"))
	}
	q, err := kernel.NewPositiveQuantity(quantity)
	if err != nil {
		errList = append(errList, err)
	}
	if err := total.Validate(); err != nil {
		errList = append(errList, err)
	}
	if len(errList) > 0 {
		return Item{}, errors.Join(errList...)
	}

	return Item{id: id, productID: productID, source: source, quantity: q, total: total}, nil
}

func (i Item) ID() int64 {
	return i.id
}

func (i Item) ProductID() int64 {
	return i.productID
}

func (i Item) Source() Source {
	return i.source
}

func (i Item) Quantity() kernel.Quantity {
	return i.quantity
}

func (i Item) Total() kernel.Money {
	return i.total
}

// IsFromWarehouse reports whether the line draws on warehouse stock.
func (i Item) IsFromWarehouse() bool {
	return i.source == SourceWarehouse
}

// ItemEdit is a requested change to one existing order line.
type ItemEdit struct {
	OrderItemID int64
	Source      Source
	Quantity    int
	ItemTotal   kernel.Money
}

// apply returns the edited line and the list of field changes, or an error
// when the edit itself is malformed.
func (i Item) apply(e ItemEdit) (Item, []string, error) {
	edited, err := NewItem(i.id, i.productID, e.Source, e.Quantity, e.ItemTotal)
	if err != nil {
		return Item{}, nil, fmt.Errorf("order item %d: %w", i.id, err)
	}

	var changes []string
	if edited.source != i.source {
		changes = append(changes, fmt.Sprintf("source: %s → %s", i.source, edited.source))
	}
	if edited.quantity != i.quantity {
		changes = append(changes, fmt.Sprintf("quantity: %s → %s", i.quantity, edited.quantity))
	}
	if !edited.total.Equal(i.total) {
		changes = append(changes, fmt.Sprintf("itemTotal: %s → %s", i.total, edited.total))
	}
	return edited, changes, nil
}

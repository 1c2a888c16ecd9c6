package kernel

import (
	"strconv"

	"backoffice/internal/pkg/errs"
)

// Quantity is a non-negative number of product units.
type Quantity struct {
	value int
}

// NewQuantity rejects negative values.
func NewQuantity(value int) (Quantity, error) {
	if value < 0 {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, 0, "unbounded")
	}
	return Quantity{value: value}, nil
}

// NewPositiveQuantity rejects zero and negative values. Order items use it.
func NewPositiveQuantity(value int) (Quantity, error) {
	if value <= 0 {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, 1, "unbounded")
	}
	return Quantity{value: value}, nil
}

// Int returns the raw count.
func (q Quantity) Int() int {
	return q.value
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value + other.value}
}

// Sub returns q - other, failing when the result would go below zero.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if other.value > q.value {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", q.value-other.value, 0, "unbounded")
	}
	return Quantity{value: q.value - other.value}, nil
}

// LessThan reports whether q < other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.value < other.value
}

func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}

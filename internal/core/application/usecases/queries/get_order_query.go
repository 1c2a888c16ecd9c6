package queries

import (
	"errors"
	"time"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its lines and history.
type GetOrderQuery struct {
	orderID int64
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsOutOfRangeError("orderID", orderID, 1, "unbounded")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type OrderItemView struct {
	ID          int64
	ProductID   int64
	ProductName string
	Source      string
	Quantity    int
	ItemTotal   decimal.Decimal
}

type OrderHistoryView struct {
	ID           int64
	Action       string
	EmployeeID   int64
	EmployeeName string
	Comment      string
	Timestamp    time.Time
}

// GetOrderQueryResponse is an order as shown on the order detail screen.
// History is oldest first.
type GetOrderQueryResponse struct {
	ID         int64
	StoreID    int64
	StoreName  string
	Status     string
	OrderTotal decimal.Decimal
	Comments   string
	CreatedAt  time.Time
	Items      []OrderItemView
	History    []OrderHistoryView
}

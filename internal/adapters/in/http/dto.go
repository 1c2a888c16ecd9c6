package http

import (
	"encoding/json"
	"time"

	"backoffice/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// UpdateOrderItemRequest changes one order line. Totals may be sent as JSON
// numbers or numeric strings.
type UpdateOrderItemRequest struct {
	OrderItemID int64       `json:"orderItemID"`
	Source      string      `json:"source"`
	Quantity    int         `json:"quantity"`
	ItemTotal   json.Number `json:"itemTotal"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:id. Omitted
// orderTotal and comments keep the stored values.
type UpdateOrderRequest struct {
	Status       string                   `json:"status"`
	OrderTotal   *json.Number             `json:"orderTotal,omitempty"`
	Comments     *string                  `json:"comments,omitempty"`
	UpdatedItems []UpdateOrderItemRequest `json:"updatedItems,omitempty"`
}

type UpdateOrderResponse struct {
	Success   bool  `json:"success"`
	OrderID   int64 `json:"orderID"`
	HistoryID int64 `json:"historyID"`
}

type OrderItem struct {
	OrderItemID int64           `json:"orderItemID"`
	ProductID   int64           `json:"productID"`
	ProductName string          `json:"productName"`
	Source      string          `json:"source"`
	Quantity    int             `json:"quantity"`
	ItemTotal   decimal.Decimal `json:"itemTotal"`
}

type OrderHistoryEntry struct {
	HistoryID    int64     `json:"historyID"`
	Action       string    `json:"action"`
	EmployeeID   int64     `json:"employeeID"`
	EmployeeName string    `json:"employeeName"`
	Comment      string    `json:"comment"`
	Timestamp    time.Time `json:"timestamp"`
}

type Order struct {
	OrderID    int64               `json:"orderID"`
	StoreID    int64               `json:"storeID"`
	StoreName  string              `json:"storeName"`
	Status     string              `json:"status"`
	OrderTotal decimal.Decimal     `json:"orderTotal"`
	Comments   string              `json:"comments"`
	CreatedAt  time.Time           `json:"createdAt"`
	Items      []OrderItem         `json:"items"`
	History    []OrderHistoryEntry `json:"history"`
}

type ActiveOrder struct {
	OrderID    int64           `json:"orderID"`
	StoreID    int64           `json:"storeID"`
	StoreName  string          `json:"storeName"`
	Status     string          `json:"status"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
	ItemCount  int             `json:"itemCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type TableLog struct {
	LogID        int64     `json:"logID"`
	EmployeeID   int64     `json:"employeeID"`
	EmployeeName string    `json:"employeeName"`
	TableName    string    `json:"tableName"`
	RecordID     int64     `json:"recordID"`
	Action       string    `json:"action"`
	Comment      string    `json:"comment"`
	Timestamp    time.Time `json:"timestamp"`
}

func toOrder(r queries.GetOrderQueryResponse) Order {
	o := Order{
		OrderID:    r.ID,
		StoreID:    r.StoreID,
		StoreName:  r.StoreName,
		Status:     r.Status,
		OrderTotal: r.OrderTotal,
		Comments:   r.Comments,
		CreatedAt:  r.CreatedAt,
		Items:      make([]OrderItem, len(r.Items)),
		History:    make([]OrderHistoryEntry, len(r.History)),
	}
	for i, item := range r.Items {
		o.Items[i] = OrderItem{
			OrderItemID: item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Source:      item.Source,
			Quantity:    item.Quantity,
			ItemTotal:   item.ItemTotal,
		}
	}
	for i, h := range r.History {
		o.History[i] = OrderHistoryEntry{
			HistoryID:    h.ID,
			Action:       h.Action,
			EmployeeID:   h.EmployeeID,
			EmployeeName: h.EmployeeName,
			Comment:      h.Comment,
			Timestamp:    h.Timestamp,
		}
	}
	return o
}

// Package orderrepo persists orders, their lines and their history with GORM.
package orderrepo

import (
	"database/sql"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"

	"github.com/shopspring/decimal"
)

// History actions written to order_history.
const (
	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
)

// OrderDTO maps the orders table.
type OrderDTO struct {
	ID         int64           `gorm:"column:order_id;primaryKey"`
	StoreID    int64           `gorm:"column:store_id"`
	Status     string          `gorm:"column:status"`
	OrderTotal decimal.Decimal `gorm:"column:order_total;type:numeric(14,2)"`
	Comments   string          `gorm:"column:comments"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO maps the order_items table.
type OrderItemDTO struct {
	ID        int64           `gorm:"column:order_item_id;primaryKey"`
	OrderID   int64           `gorm:"column:order_id"`
	ProductID int64           `gorm:"column:product_id"`
	Source    string          `gorm:"column:source"`
	Quantity  int             `gorm:"column:quantity"`
	ItemTotal decimal.Decimal `gorm:"column:item_total;type:numeric(14,2)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderHistoryDTO maps the order_history table.
type OrderHistoryDTO struct {
	ID         int64     `gorm:"column:history_id;primaryKey"`
	OrderID    int64     `gorm:"column:order_id"`
	Timestamp  time.Time `gorm:"column:timestamp;autoCreateTime"`
	Action     string    `gorm:"column:action"`
	EmployeeID int64     `gorm:"column:employee_id"`
	Comment    string    `gorm:"column:comment"`
}

func (OrderHistoryDTO) TableName() string {
	return "order_history"
}

// joinedRowDTO is one row of the order/creator/items join. Item columns are
// null for orders without lines; creator columns are null when the order has
// no CREATED history entry.
type joinedRowDTO struct {
	OrderID     int64               `gorm:"column:order_id"`
	StoreID     int64               `gorm:"column:store_id"`
	Status      string              `gorm:"column:status"`
	OrderTotal  decimal.Decimal     `gorm:"column:order_total"`
	Comments    string              `gorm:"column:comments"`
	CreatorID   sql.NullInt64       `gorm:"column:creator_id"`
	CreatorRole sql.NullString      `gorm:"column:creator_role"`
	OrderItemID sql.NullInt64       `gorm:"column:order_item_id"`
	ProductID   sql.NullInt64       `gorm:"column:product_id"`
	Source      sql.NullString      `gorm:"column:source"`
	Quantity    sql.NullInt64       `gorm:"column:quantity"`
	ItemTotal   decimal.NullDecimal `gorm:"column:item_total"`
}

// toDomain folds the joined rows of one order into the aggregate.
func toDomain(rows []joinedRowDTO) (*order.Order, error) {
	head := rows[0]

	status, err := order.ParseStatus(head.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", head.OrderID, err)
	}
	total, err := kernel.NewMoney(head.OrderTotal)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", head.OrderID, err)
	}

	items := make([]order.Item, 0, len(rows))
	for _, row := range rows {
		if !row.OrderItemID.Valid {
			continue
		}
		itemTotal, err := kernel.NewMoney(row.ItemTotal.Decimal)
		if err != nil {
			return nil, fmt.Errorf("order item %d: %w", row.OrderItemID.Int64, err)
		}
		source, err := order.ParseSource(row.Source.String)
		if err != nil {
			return nil, fmt.Errorf("order item %d: %w", row.OrderItemID.Int64, err)
		}
		it, err := order.NewItem(row.OrderItemID.Int64, row.ProductID.Int64, source, int(row.Quantity.Int64), itemTotal)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	creatorRole := role.Employee
	if head.CreatorRole.Valid {
		creatorRole = role.Parse(head.CreatorRole.String)
	}

	return order.RestoreOrder(order.State{
		ID:          head.OrderID,
		StoreID:     head.StoreID,
		Status:      status,
		Total:       total,
		Comments:    head.Comments,
		CreatorID:   head.CreatorID.Int64,
		CreatorRole: creatorRole,
		Items:       items,
	})
}

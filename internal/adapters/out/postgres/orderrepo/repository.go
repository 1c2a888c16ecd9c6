package orderrepo

import (
	"context"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// loadJoinedStateSQL reads the order with its creator and lines, locking the order row.
const loadJoinedStateSQL = `
SELECT
	o.order_id,
	o.store_id,
	o.status,
	o.order_total,
	o.comments,
	c.employee_id AS creator_id,
	c.role        AS creator_role,
	oi.order_item_id,
	oi.product_id,
	oi.source,
	oi.quantity,
	oi.item_total
FROM orders o
LEFT JOIN LATERAL (
	SELECT e.employee_id, e.role
	FROM order_history oh
	JOIN employees e ON e.employee_id = oh.employee_id
	WHERE oh.order_id = o.order_id AND oh.action = 'CREATED'
	ORDER BY oh.history_id
	LIMIT 1
) c ON TRUE
LEFT JOIN order_items oi ON oi.order_id = o.order_id
WHERE o.order_id = ?
ORDER BY oi.order_item_id
FOR UPDATE OF o`

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository on db, usually a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// LoadJoinedState loads the order aggregate and locks its row.
func (r *GormOrderRepository) LoadJoinedState(ctx context.Context, orderID int64) (*order.Order, error) {
	var rows []joinedRowDTO
	if err := r.db.WithContext(ctx).Raw(loadJoinedStateSQL, orderID).Scan(&rows).Error; err != nil {
		return nil, pgerr.Wrap("load order", err)
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}

	return toDomain(rows)
}

// UpdateItem overwrites one order line.
func (r *GormOrderRepository) UpdateItem(ctx context.Context, orderID int64, item order.Item) error {
	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("order_id = ? AND order_item_id = ?", orderID, item.ID()).
		Updates(map[string]any{
			"source":     item.Source().String(),
			"quantity":   item.Quantity().Int(),
			"item_total": item.Total().Decimal(),
		})
	if result.Error != nil {
		return pgerr.Wrap("update order item", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewItemNotInOrderError(item.ID(), orderID)
	}
	return nil
}

// PersistOrderAndHistory writes the order row and appends an UPDATED history entry.
func (r *GormOrderRepository) PersistOrderAndHistory(
	ctx context.Context,
	o *order.Order,
	actorID int64,
	comment string,
) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("order_id = ?", o.ID()).
		Updates(map[string]any{
			"status":      o.Status().String(),
			"order_total": o.Total().Decimal(),
			"comments":    o.Comments(),
		})
	if result.Error != nil {
		return 0, pgerr.Wrap("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewObjectNotFoundError("orderID", o.ID())
	}

	history := OrderHistoryDTO{
		OrderID:    o.ID(),
		Action:     ActionUpdated,
		EmployeeID: actorID,
		Comment:    comment,
	}
	if err := db.Create(&history).Error; err != nil {
		return 0, pgerr.Wrap("insert order history", err)
	}
	return history.ID, nil
}

package queries

import (
	"context"

	"backoffice/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns active orders, newest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := order.ActiveStatuses()
	statuses := make([]string, 0, len(active))
	for _, s := range active {
		statuses = append(statuses, s.String())
	}

	tx := h.db.WithContext(ctx).
		Table("orders o").
		Select(`o.order_id AS id, o.store_id, s.name AS store_name, o.status, o.order_total,
			COUNT(i.order_item_id) AS item_count, o.created_at`).
		Joins("JOIN stores s ON s.store_id = o.store_id").
		Joins("LEFT JOIN order_items i ON i.order_id = o.order_id").
		Where("o.status IN ?", statuses)
	if storeID := query.StoreID(); storeID != nil {
		tx = tx.Where("o.store_id = ?", *storeID)
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)
	err := tx.
		Group("o.order_id, s.name").
		Order("o.created_at DESC, o.order_id DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

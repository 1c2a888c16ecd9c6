package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetLowStockQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockQueryHandler(db *gorm.DB) GetLowStockQueryHandler {
	return GetLowStockQueryHandler{db: db}
}

// Handle returns low records ordered by quantity, then location and product.
func (h GetLowStockQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockQuery,
) ([]GetLowStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetLowStockQueryResponse, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			inv.inventory_id,
			inv.product_id,
			p.name AS product_name,
			inv.store_id,
			s.name AS store_name,
			inv.quantity
		FROM inventory inv
		JOIN products p ON p.product_id = inv.product_id
		JOIN stores s ON s.store_id = inv.store_id
		WHERE inv.quantity <= ?
		ORDER BY inv.quantity, inv.store_id, inv.product_id
	`, query.Threshold()).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

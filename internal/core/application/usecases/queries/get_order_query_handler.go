package queries

import (
	"context"
	"database/sql"

	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	var resp GetOrderQueryResponse

	rows, err := db.Raw(`
		SELECT
			o.order_id,
			o.store_id,
			s.name,
			o.status,
			o.order_total,
			o.comments,
			o.created_at
		FROM orders o
		JOIN stores s ON s.store_id = o.store_id
		WHERE o.order_id = ?
	`, query.OrderID()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	var comments sql.NullString
	var total decimal.Decimal
	if err = rows.Scan(&resp.ID, &resp.StoreID, &resp.StoreName, &resp.Status, &total, &comments, &resp.CreatedAt); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.OrderTotal = total
	resp.Comments = comments.String
	if err = rows.Close(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items = make([]OrderItemView, 0)
	err = db.Raw(`
		SELECT
			i.order_item_id AS id,
			i.product_id,
			p.name AS product_name,
			i.source,
			i.quantity,
			i.item_total
		FROM order_items i
		JOIN products p ON p.product_id = i.product_id
		WHERE i.order_id = ?
		ORDER BY i.order_item_id
	`, query.OrderID()).Scan(&resp.Items).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.History = make([]OrderHistoryView, 0)
	err = db.Raw(`
		SELECT
			h.history_id AS id,
			h.action,
			h.employee_id,
			COALESCE(e.name, '') AS employee_name,
			COALESCE(h.comment, '') AS comment,
			h."timestamp"
		FROM order_history h
		LEFT JOIN employees e ON e.employee_id = h.employee_id
		WHERE h.order_id = ?
		ORDER BY h."timestamp", h.history_id
	`, query.OrderID()).Scan(&resp.History).Error
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

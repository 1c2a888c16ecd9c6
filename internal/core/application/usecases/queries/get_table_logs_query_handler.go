package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetTableLogsQueryHandler struct {
	db *gorm.DB
}

func NewGetTableLogsQueryHandler(db *gorm.DB) GetTableLogsQueryHandler {
	return GetTableLogsQueryHandler{db: db}
}

func (h GetTableLogsQueryHandler) Handle(
	ctx context.Context,
	query GetTableLogsQuery,
) ([]GetTableLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	f := query.Filter()

	tx := h.db.WithContext(ctx).
		Table("table_logs l").
		Select(`l.log_id AS id, l.employee_id, COALESCE(e.name, '') AS employee_name, l.table_name,
			l.record_id, l.action, COALESCE(l.comment, '') AS comment, l."timestamp"`).
		Joins("LEFT JOIN employees e ON e.employee_id = l.employee_id")
	if f.Table != "" {
		tx = tx.Where("l.table_name = ?", f.Table)
	}
	if f.EmployeeID != 0 {
		tx = tx.Where("l.employee_id = ?", f.EmployeeID)
	}
	if f.RecordID != 0 {
		tx = tx.Where("l.record_id = ?", f.RecordID)
	}

	logs := make([]GetTableLogsQueryResponse, 0)
	err := tx.
		Order(`l."timestamp" DESC, l.log_id DESC`).
		Limit(f.Limit).
		Scan(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

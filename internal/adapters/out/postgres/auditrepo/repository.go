package auditrepo

import (
	"context"

	"backoffice/internal/adapters/out/postgres/pgerr"
	"backoffice/internal/core/domain/model/audit"

	"gorm.io/gorm"
)

// GormAuditLog implements ports.AuditLog using GORM.
type GormAuditLog struct {
	db *gorm.DB
}

func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Log validates and inserts the entry.
func (l *GormAuditLog) Log(ctx context.Context, entry audit.Entry) error {
	valid, err := audit.NewEntry(entry.EmployeeID, entry.Table, entry.RecordID, entry.Action, entry.Comment)
	if err != nil {
		return err
	}

	dto := fromDomain(valid)
	if err = l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("insert table log", err)
	}
	return nil
}

// ForRecord returns the entries of one audited row, newest first.
func (l *GormAuditLog) ForRecord(ctx context.Context, table audit.Table, recordID int64) ([]audit.Entry, error) {
	var dtos []TableLogDTO
	err := l.db.WithContext(ctx).
		Where("table_name = ? AND record_id = ?", string(table), recordID).
		Order(`"timestamp" DESC, log_id DESC`).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("list table logs", err)
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, toDomain(dto))
	}
	return entries, nil
}

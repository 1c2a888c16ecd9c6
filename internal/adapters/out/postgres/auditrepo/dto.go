// Package auditrepo stores TableLogs entries with GORM.
package auditrepo

import (
	"time"

	"backoffice/internal/core/domain/model/audit"
)

// TableLogDTO maps the table_logs table.
type TableLogDTO struct {
	ID         int64     `gorm:"column:log_id;primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id"`
	Table      string    `gorm:"column:table_name"`
	RecordID   int64     `gorm:"column:record_id"`
	Action     string    `gorm:"column:action"`
	Comment    string    `gorm:"column:comment"`
	Timestamp  time.Time `gorm:"column:timestamp;autoCreateTime"`
}

func (TableLogDTO) TableName() string {
	return "table_logs"
}

func fromDomain(e audit.Entry) TableLogDTO {
	return TableLogDTO{
		EmployeeID: e.EmployeeID,
		Table:      string(e.Table),
		RecordID:   e.RecordID,
		Action:     string(e.Action),
		Comment:    e.Comment,
	}
}

func toDomain(dto TableLogDTO) audit.Entry {
	return audit.Entry{
		ID:         dto.ID,
		EmployeeID: dto.EmployeeID,
		Table:      audit.Table(dto.Table),
		RecordID:   dto.RecordID,
		Action:     audit.Action(dto.Action),
		Comment:    dto.Comment,
		Timestamp:  dto.Timestamp,
	}
}

package ports

import (
	"context"

	"backoffice/internal/core/domain/model/audit"
)

// AuditLog appends TableLogs entries.
type AuditLog interface {
	Log(ctx context.Context, entry audit.Entry) error
}

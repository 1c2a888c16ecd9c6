package queries

import (
	"errors"
	"time"

	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

const (
	DefaultTableLogsLimit = 100
	MaxTableLogsLimit     = 1000
)

var ErrGetTableLogsQueryIsNotConstructed = errors.New(
	"GetTableLogsQuery must be created via NewGetTableLogsQuery constructor",
)

// TableLogsFilter narrows the audit log. Zero values match everything and a
// zero Limit means DefaultTableLogsLimit.
type TableLogsFilter struct {
	Table      string
	EmployeeID int64
	RecordID   int64
	Limit      int
}

// GetTableLogsQuery reads audit entries, newest first.
type GetTableLogsQuery struct {
	filter TableLogsFilter
	guard  guard.ConstructorGuard
}

func NewGetTableLogsQuery(filter TableLogsFilter) (GetTableLogsQuery, error) {
	var errList []error
	if filter.EmployeeID < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("employeeID", filter.EmployeeID, 0, "unbounded"))
	}
	if filter.RecordID < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("recordID", filter.RecordID, 0, "unbounded"))
	}
	if filter.Limit < 0 || filter.Limit > MaxTableLogsLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, MaxTableLogsLimit))
	}
	if err := errors.Join(errList...); err != nil {
		return GetTableLogsQuery{}, err
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultTableLogsLimit
	}
	return GetTableLogsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTableLogsQuery) Filter() TableLogsFilter {
	return q.filter
}

func (q GetTableLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetTableLogsQueryIsNotConstructed)
}

type GetTableLogsQueryResponse struct {
	ID           int64
	EmployeeID   int64
	EmployeeName string
	TableName    string
	RecordID     int64
	Action       string
	Comment      string
	Timestamp    time.Time
}

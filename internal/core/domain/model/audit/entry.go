// Package audit describes TableLogs entries: one row per write performed on
// behalf of an employee.
package audit

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/pkg/errs"
)

// Table names the audited table.
type Table string

const (
	TableOrders       Table = "Orders"
	TableOrderItems   Table = "OrderItems"
	TableInventory    Table = "Inventory"
	TableOrderHistory Table = "OrderHistory"
)

// Action is the kind of write.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

func (a Action) validate() error {
	switch a {
	case ActionInsert, ActionUpdate, ActionDelete:
		return nil
	case "":
		return errs.NewValueIsRequiredError("action")
	}
	return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", string(a)))
}

// Entry is a single audit row.
type Entry struct {
	ID         int64
	EmployeeID int64
	Table      Table
	RecordID   int64
	Action     Action
	Comment    string
	Timestamp  time.Time
}

// NewEntry validates a new audit row. Timestamp and ID are set by storage.
func NewEntry(employeeID int64, table Table, recordID int64, action Action, comment string) (Entry, error) {
	var errList []error
	if employeeID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("employeeID", employeeID, 1, "unbounded"))
	}
	if table == "" {
		errList = append(errList, errs.NewValueIsRequiredError("tableName"))
	}
	if recordID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("recordID", recordID, 1, "unbounded"))
	}
	if err := action.validate(); err != nil {
		errList = append(errList, err)
	}
	if len(errList) > 0 {
		return Entry{}, errors.Join(errList...)
	}

	return Entry{
		EmployeeID: employeeID,
		Table:      table,
		RecordID:   recordID,
		Action:     action,
		Comment:    comment,
	}, nil
}

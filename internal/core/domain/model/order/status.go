package order

import (
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
//	Pendiente ──> Aprobada ──> Confirmada ──> Entregada
//	    │            ├──────────────────────────> Entregada
//	    └────────────┴──────────┴─────────────> Cancelada
//
// Which edges a requester may follow depends on the role; see ValidateStatusTransition.
// Statuses are stored and exchanged by their Spanish names.
type Status int

const (
	// Unknown catches uninitialized values and is never valid.
	Unknown Status = iota
	Pending
	Approved
	Confirmed
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Pending:   "Pendiente",
	Approved:  "Aprobada",
	Confirmed: "Confirmada",
	Delivered: "Entregada",
	Cancelled: "Cancelada",
}

// ParseStatus maps a persisted or requested status name to a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.TrimSpace(s)
	for status, n := range statusNames {
		if status != Unknown && strings.EqualFold(n, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the five lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "Unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ActiveStatuses lists the statuses of orders still in progress.
func ActiveStatuses() []Status {
	return []Status{Pending, Approved, Confirmed}
}

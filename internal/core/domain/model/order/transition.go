package order

import "backoffice/internal/core/domain/model/role"

// transitions is the per-role directed graph of status changes.
// Roles missing from the graph may only keep an active order in its status.
var transitions = map[role.Role]map[Status][]Status{
	role.WarehouseManager: {
		Pending:   {Approved, Cancelled},
		Approved:  {Confirmed, Delivered, Cancelled},
		Confirmed: {Delivered, Cancelled},
	},
	role.Manager: {
		Pending:  {Cancelled},
		Approved: {Delivered, Cancelled},
	},
}

// ValidateStatusTransition reports whether r may move an order from one status
// to another. Keeping an active status is allowed for everyone so that other
// fields can be updated; terminal statuses have no outgoing edges at all.
// Anything not in the graph is rejected.
func ValidateStatusTransition(from, to Status, r role.Role) bool {
	if from.Validate() != nil || to.Validate() != nil {
		return false
	}
	if from == to {
		return !from.IsTerminal()
	}
	for _, next := range transitions[r][from] {
		if next == to {
			return true
		}
	}
	return false
}

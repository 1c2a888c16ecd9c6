// Package order provides the Order aggregate of the back-office: a purchase
// request made of line items that moves through a role-gated lifecycle.
//
// The package includes:
//   - Order: the aggregate root restored from storage and mutated by Update
//   - Item: an order line with its fulfilment source, quantity and total
//   - Status: the lifecycle states (Pendiente, Aprobada, Confirmada, Entregada, Cancelada)
//   - ValidateStatusTransition: the per-role transition graph
//   - ChangeSet: the outcome of an update, used for persistence and auditing
//
// Key business rules:
//   - Only managers edit items, only on Pendiente orders, and only from the warehouse
//   - Managers never touch orders raised by another warehouse manager
//   - Managers cannot approve; only warehouse managers confirm
//   - Entregada and Cancelada are terminal
//   - Whenever items change, the order total is the sum of item totals
//
// Update is pure: it validates everything in memory and returns the resulting
// ChangeSet, leaving inventory and storage to the application layer.
package order

// Package services provides domain services that span more than one aggregate
// of the back-office.
//
// The package includes:
//   - StockPlanner: derives the inventory movements implied by an order status change
//
// Services here are pure; executing the movements against inventory records
// is left to the application layer, which owns the transaction.
package services

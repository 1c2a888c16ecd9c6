// Package kernel provides the value objects shared by the order and inventory
// models.
//
// The package includes:
//   - Money: a non-negative monetary amount backed by shopspring/decimal, used
//     for order totals and item totals
//   - Quantity: a non-negative count of product units, used for order items and
//     inventory records
//
// Both types are immutable. Their zero values are invalid and fail Validate;
// use the constructors to build them.
package kernel

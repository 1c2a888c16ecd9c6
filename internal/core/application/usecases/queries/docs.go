// Package queries contains read-only operations over orders, inventory and
// the audit log. Handlers read straight from the database with GORM and return
// flat response structs; they never go through the domain aggregates.
package queries

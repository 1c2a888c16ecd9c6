// Package role models the closed set of employee roles and the order
// capabilities attached to each of them.
//
// Roles are not persisted by the order core; the caller supplies the
// requester's role with every command. Each role is bound to a policy holding
// one check per capability:
//   - editItems: may the role change order items at all
//   - editOrder: may the role edit an order given who created it
//
// Status transitions are a capability too, but they depend on order statuses
// and therefore live next to the status graph in the order package.
package role

import (
	"strings"

	"backoffice/internal/pkg/errs"
)

// Role identifies what an employee may do.
type Role string

const (
	Admin            Role = "admin"
	Owner            Role = "owner"
	Manager          Role = "manager"
	WarehouseManager Role = "warehouse_manager"
	Sales            Role = "sales"
	// Employee is the implicit role without order permissions. Unknown role
	// names parse to Employee.
	Employee Role = "employee"
)

// Ownership describes who is acting on an order and who created it.
type Ownership struct {
	RequesterID int64
	CreatorID   int64
	CreatorRole Role
}

// IsCreator reports whether the requester created the order.
func (o Ownership) IsCreator() bool {
	return o.CreatorID != 0 && o.CreatorID == o.RequesterID
}

type policy struct {
	editItems func() error
	editOrder func(Ownership) error
}

func allow() error { return nil }

func allowOrder(Ownership) error { return nil }

func itemsForbiddenFor(name string) func() error {
	return func() error {
		return errs.NewForbiddenError(name + " cannot modify items")
	}
}

// managers edit their own orders and orders not raised by a warehouse manager.
func managerEditOrder(o Ownership) error {
	if o.CreatorRole == WarehouseManager && !o.IsCreator() {
		return errs.NewForbiddenError("managers cannot edit orders created by warehouse managers")
	}
	return nil
}

var policies = map[Role]policy{
	Admin:            {editItems: itemsForbiddenFor("admins"), editOrder: allowOrder},
	Owner:            {editItems: itemsForbiddenFor("owners"), editOrder: allowOrder},
	Manager:          {editItems: allow, editOrder: managerEditOrder},
	WarehouseManager: {editItems: itemsForbiddenFor("warehouse managers"), editOrder: allowOrder},
	Sales:            {editItems: itemsForbiddenFor("sales employees"), editOrder: allowOrder},
	Employee:         {editItems: itemsForbiddenFor("employees"), editOrder: allowOrder},
}

// Parse maps a role name to a Role. Matching ignores case and surrounding
// spaces; unknown names map to Employee.
func Parse(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := policies[r]; !ok {
		return Employee
	}
	return r
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

func (r Role) policy() policy {
	if p, ok := policies[r]; ok {
		return p
	}
	return policies[Employee]
}

// CanEditItems returns a ForbiddenError unless the role may change order items.
func (r Role) CanEditItems() error {
	return r.policy().editItems()
}

// CanEditOrder returns a ForbiddenError unless the role may edit an order
// with the given ownership.
func (r Role) CanEditOrder(o Ownership) error {
	return r.policy().editOrder(o)
}

// MustSourceFromWarehouse reports whether items edited by this role have to
// be fulfilled from the central warehouse.
func (r Role) MustSourceFromWarehouse() bool {
	return r == Manager
}

package commands

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderItemInput is a requested change to one order line.
type UpdateOrderItemInput struct {
	OrderItemID int64
	Source      string
	Quantity    int
	ItemTotal   string
}

// UpdateOrderInput carries the raw request. Nil OrderTotal and Comments keep
// the stored values.
type UpdateOrderInput struct {
	OrderID       int64
	Status        string
	OrderTotal    *string
	Comments      *string
	Items         []UpdateOrderItemInput
	RequesterID   int64
	RequesterRole string
}

// UpdateOrderCommand changes the status, total, comments or lines of an order
// on behalf of an employee.
//
// Example:
//
//	cmd, err := NewUpdateOrderCommand(UpdateOrderInput{
//	    OrderID:       1,
//	    Status:        "Aprobada",
//	    RequesterID:   8,
//	    RequesterRole: "warehouse_manager",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid update: %w", err)
//	}
//
//	res, err := handler.Handle(ctx, cmd)
type UpdateOrderCommand struct {
	orderID       int64
	patch         order.Patch
	requesterID   int64
	requesterRole role.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand parses and validates the input. Unknown roles are
// treated as employee.
func NewUpdateOrderCommand(in UpdateOrderInput) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		requesterRole: role.Parse(in.RequesterRole),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(in.OrderID),
		cmd.setRequesterID(in.RequesterID),
		cmd.setStatus(in.Status),
		cmd.setOrderTotal(in.OrderTotal),
		cmd.setItems(in.Items),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	if in.Comments != nil {
		comments := *in.Comments
		cmd.patch.Comments = &comments
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Patch returns the requested changes.
func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}

func (c UpdateOrderCommand) RequesterID() int64 {
	return c.requesterID
}

func (c UpdateOrderCommand) RequesterRole() role.Role {
	return c.requesterRole
}

func (c *UpdateOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsOutOfRangeError("orderID", orderID, 1, "unbounded")
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setRequesterID(requesterID int64) error {
	if requesterID <= 0 {
		return errs.NewValueIsOutOfRangeError("requesterID", requesterID, 1, "unbounded")
	}
	c.requesterID = requesterID
	return nil
}

func (c *UpdateOrderCommand) setStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	s, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.patch.Status = s
	return nil
}

func (c *UpdateOrderCommand) setOrderTotal(total *string) error {
	if total == nil {
		return nil
	}
	m, err := kernel.MoneyFromString(*total)
	if err != nil {
		return err
	}
	c.patch.Total = &m
	return nil
}

func (c *UpdateOrderCommand) setItems(items []UpdateOrderItemInput) error {
	var errList []error
	edits := make([]order.ItemEdit, 0, len(items))
	for _, it := range items {
		source, err := order.ParseSource(it.Source)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		total, err := kernel.MoneyFromString(it.ItemTotal)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		edits = append(edits, order.ItemEdit{
			OrderItemID: it.OrderItemID,
			Source:      source,
			Quantity:    it.Quantity,
			ItemTotal:   total,
		})
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	c.patch.Items = edits
	return nil
}

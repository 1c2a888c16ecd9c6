package order

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not built by RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("order must be created via RestoreOrder")

// Order is the aggregate root of the order lifecycle.
//
// Orders are created elsewhere in the back-office; this package only restores
// them from storage and applies updates. Creator and location never change.
type Order struct {
	id          int64
	storeID     int64
	status      Status
	total       kernel.Money
	comments    string
	creatorID   int64
	creatorRole role.Role
	items       []Item
	guard       guard.ConstructorGuard
}

// State is the persisted state of an order and its lines.
type State struct {
	ID          int64
	StoreID     int64
	Status      Status
	Total       kernel.Money
	Comments    string
	CreatorID   int64
	CreatorRole role.Role
	Items       []Item
}

// RestoreOrder rebuilds an order from its persisted state.
//
// Example:
//
//	o, err := order.RestoreOrder(order.State{
//	    ID:          1,
//	    StoreID:     2,
//	    Status:      order.Pending,
//	    Total:       kernel.MustMoney("100.00"),
//	    CreatorID:   7,
//	    CreatorRole: role.Manager,
//	    Items:       items,
//	})
func RestoreOrder(s State) (*Order, error) {
	var errList []error
	if s.ID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("orderID", s.ID, 1, "unbounded"))
	}
	if s.StoreID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("storeID", s.StoreID, 1, "unbounded"))
	}
	if err := s.Status.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := s.Total.Validate(); err != nil {
		errList = append(errList, err)
	}
	seen := make(map[int64]struct{}, len(s.Items))
	for _, it := range s.Items {
		if it.id <= 0 {
			errList = append(errList, errs.NewValueIsRequiredError("orderItemID"))
			continue
		}
		if _, dup := seen[it.id]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"orderItemID", fmt.Errorf("item %d appears twice", it.id)))
		}
		seen[it.id] = struct{}{}
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	creatorRole := s.CreatorRole
	if creatorRole == "" {
		creatorRole = role.Employee
	}

	return &Order{
		id:          s.ID,
		storeID:     s.StoreID,
		status:      s.Status,
		total:       s.Total,
		comments:    s.Comments,
		creatorID:   s.CreatorID,
		creatorRole: creatorRole,
		items:       append([]Item(nil), s.Items...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was built by RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() int64 {
	return o.id
}

// StoreID is the location that receives the goods on delivery.
func (o *Order) StoreID() int64 {
	return o.storeID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Comments() string {
	return o.comments
}

func (o *Order) CreatorID() int64 {
	return o.creatorID
}

func (o *Order) CreatorRole() role.Role {
	return o.creatorRole
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Patch is a requested update. Nil Total and Comments keep the current values.
type Patch struct {
	Status   Status
	Total    *kernel.Money
	Comments *string
	Items    []ItemEdit
}

// Update applies p on behalf of the requester.
//
// Checks run in this order and stop at the first failure, leaving the order
// untouched:
//  1. role gates: item edits and ownership (ForbiddenError)
//  2. item reconciliation: membership (ItemNotInOrderError), manager sourcing
//     (ValueIsInvalidError) and the Pendiente-only rule (ForbiddenError)
//  3. status transition (InvalidTransitionError)
//
// On success the order reflects the patch and the returned ChangeSet lists
// what changed.
func (o *Order) Update(requesterID int64, r role.Role, p Patch) (ChangeSet, error) {
	if err := o.Validate(); err != nil {
		return ChangeSet{}, err
	}
	if err := p.Status.Validate(); err != nil {
		return ChangeSet{}, err
	}
	if p.Total != nil {
		if err := p.Total.Validate(); err != nil {
			return ChangeSet{}, err
		}
	}

	if len(p.Items) > 0 {
		if err := r.CanEditItems(); err != nil {
			return ChangeSet{}, err
		}
	}
	ownership := role.Ownership{RequesterID: requesterID, CreatorID: o.creatorID, CreatorRole: o.creatorRole}
	if err := r.CanEditOrder(ownership); err != nil {
		return ChangeSet{}, err
	}

	items, itemChanges, err := o.reconcile(r, p.Items)
	if err != nil {
		return ChangeSet{}, err
	}

	if !ValidateStatusTransition(o.status, p.Status, r) {
		return ChangeSet{}, errs.NewInvalidTransitionError(o.status.String(), p.Status.String(), r.String())
	}

	total := o.total
	if p.Total != nil {
		total = *p.Total
	}
	if len(itemChanges) > 0 {
		lineTotals := make([]kernel.Money, 0, len(items))
		for _, it := range items {
			lineTotals = append(lineTotals, it.total)
		}
		total = kernel.SumMoney(lineTotals...)
	}
	comments := o.comments
	if p.Comments != nil {
		comments = *p.Comments
	}

	cs := ChangeSet{From: o.status, To: p.Status, Items: itemChanges}
	if !total.Equal(o.total) {
		cs.Order = append(cs.Order, fmt.Sprintf("orderTotal: %s → %s", o.total, total))
	}
	if p.Status != o.status {
		cs.Order = append(cs.Order, fmt.Sprintf("status: %s → %s", o.status, p.Status))
	}
	if comments != o.comments {
		cs.Order = append(cs.Order, fmt.Sprintf("comments: %s → %s", o.comments, comments))
	}

	o.status = p.Status
	o.total = total
	o.comments = comments
	o.items = items
	return cs, nil
}

// reconcile applies item edits to a copy of the order lines.
func (o *Order) reconcile(r role.Role, edits []ItemEdit) ([]Item, []ItemChange, error) {
	items := o.Items()
	if len(edits) == 0 {
		return items, nil, nil
	}

	index := make(map[int64]int, len(items))
	for i, it := range items {
		index[it.id] = i
	}

	var changes []ItemChange
	for _, e := range edits {
		i, ok := index[e.OrderItemID]
		if !ok {
			return nil, nil, errs.NewItemNotInOrderError(e.OrderItemID, o.id)
		}
		if r.MustSourceFromWarehouse() && e.Source != SourceWarehouse {
			return nil, nil, errs.NewValueIsInvalidErrorWithCause("source",
				fmt.Errorf("managers must source items from %q, got %q", SourceWarehouse, e.Source))
		}

		edited, fields, err := items[i].apply(e)
		if err != nil {
			return nil, nil, err
		}
		if len(fields) == 0 {
			continue
		}
		items[i] = edited
		changes = upsertItemChange(changes, ItemChange{Item: edited, Fields: fields})
	}

	if len(changes) > 0 && o.status != Pending {
		return nil, nil, errs.NewForbiddenError(
			fmt.Sprintf("items can only be edited while the order is %s", Pending))
	}
	return items, changes, nil
}

// upsertItemChange keeps one entry per line when the same line is edited twice.
func upsertItemChange(changes []ItemChange, c ItemChange) []ItemChange {
	for i := range changes {
		if changes[i].Item.id == c.Item.id {
			changes[i].Item = c.Item
			changes[i].Fields = append(changes[i].Fields, c.Fields...)
			return changes
		}
	}
	return append(changes, c)
}

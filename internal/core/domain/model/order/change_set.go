package order

import (
	"fmt"
	"strings"
)

// ItemChange is an order line rewritten by an update.
type ItemChange struct {
	Item   Item
	Fields []string
}

// Description reads like "Item 10: quantity: 5 → 3, itemTotal: 50.00 → 30.00".
func (c ItemChange) Description() string {
	return fmt.Sprintf("Item %d: %s", c.Item.ID(), strings.Join(c.Fields, ", "))
}

// ChangeSet describes what an Update changed.
type ChangeSet struct {
	From  Status
	To    Status
	Order []string
	Items []ItemChange
}

// IsEmpty reports whether the update left the order as it was.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Order) == 0 && len(c.Items) == 0
}

// Changes lists every order and item change in audit order.
func (c ChangeSet) Changes() []string {
	all := append([]string(nil), c.Order...)
	for _, it := range c.Items {
		all = append(all, it.Description())
	}
	return all
}

// HistoryComment is the comment stored on the order history entry.
func (c ChangeSet) HistoryComment() string {
	if c.IsEmpty() {
		return "No changes detected"
	}
	return "Updated order. " + strings.Join(c.Changes(), " | ")
}

// OrderLogComment is the audit comment for the order row itself.
func (c ChangeSet) OrderLogComment() string {
	if len(c.Order) == 0 {
		return "No changes detected"
	}
	return "Updated: " + strings.Join(c.Order, ", ")
}

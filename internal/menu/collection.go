package menu

import "github.com/johnconnor-sec/menukit-go/internal/event"

// AddData is the payload of a collection "add" event.
type AddData struct {
	Item  *Item
	Index int
}

// RemoveData is the payload of a collection "remove" event.
type RemoveData struct {
	Item  *Item
	Index int
}

// ResetData is the payload of a collection "reset" event. Previous holds the
// membership snapshot from before the reset.
type ResetData struct {
	Previous []*Item
}

// Collection is an ordered, insertion-order-preserving container of items.
// Membership is by item identity; adding an existing member is a no-op.
//
// Mutations emit events: "add" and "remove" per item, each followed by
// "update"; bulk Reset emits only "reset" with the previous membership.
type Collection struct {
	events event.Emitter
	items  []*Item
}

// NewCollection creates a collection holding the given items in order.
func NewCollection(items ...*Item) *Collection {
	c := &Collection{}
	c.items = append(c.items, items...)
	return c
}

// Add appends an item, ignoring items already present.
func (c *Collection) Add(item *Item) {
	if item == nil || c.IndexOf(item) >= 0 {
		return
	}
	c.items = append(c.items, item)
	index := len(c.items) - 1
	c.events.Emit("add", AddData{Item: item, Index: index})
	c.events.Emit("update", nil)
}

// Remove removes an item and reports whether it was a member.
func (c *Collection) Remove(item *Item) bool {
	index := c.IndexOf(item)
	if index < 0 {
		return false
	}
	c.items = append(c.items[:index:index], c.items[index+1:]...)
	c.events.Emit("remove", RemoveData{Item: item, Index: index})
	c.events.Emit("update", nil)
	return true
}

// Reset replaces the whole membership in one step. Per-item add/remove events
// are not emitted; observers that derive state from membership must re-derive
// it from the "reset" notification.
func (c *Collection) Reset(items []*Item) {
	previous := c.Items()
	c.items = append([]*Item(nil), items...)
	c.events.Emit("reset", ResetData{Previous: previous})
}

// Items returns a copy of the membership in order.
func (c *Collection) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the item at position i, or nil when out of range.
func (c *Collection) At(i int) *Item {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// IndexOf returns the position of an item, or -1 when absent.
func (c *Collection) IndexOf(item *Item) int {
	for i, it := range c.items {
		if it == item {
			return i
		}
	}
	return -1
}

// On subscribes to collection notifications
// ("add", "remove", "update", "reset").
func (c *Collection) On(name string, fn event.Handler) *event.Subscription {
	return c.events.On(name, fn)
}

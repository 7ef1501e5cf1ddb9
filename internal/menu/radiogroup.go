package menu

import "github.com/johnconnor-sec/menukit-go/internal/event"

// RadioGroup is a Collection that additionally keeps the "at most one member
// checked" invariant. Checking a member forcibly unchecks the previously
// checked one; the group tracks the checked member directly.
//
// The relation to members is pairwise: each member's RadioGroup()
// back-reference points here while it is a member, and removal clears both
// sides. A removed member keeps its own checked flag; it is simply no longer
// coordinated.
type RadioGroup struct {
	Collection

	checkedItem *Item
	subs        map[*Item]*event.Subscription
	muted       bool
}

// NewRadioGroup creates a group holding the given items. Items are processed
// in order, so when several arrive checked, the last one wins.
func NewRadioGroup(items ...*Item) *RadioGroup {
	g := &RadioGroup{subs: make(map[*Item]*event.Subscription)}

	g.Collection.On("add", func(ev event.Event) {
		g.memberAdded(ev.Data.(AddData).Item)
	})
	g.Collection.On("remove", func(ev event.Event) {
		g.memberRemoved(ev.Data.(RemoveData).Item)
	})
	g.Collection.On("reset", func(ev event.Event) {
		g.rederive(ev.Data.(ResetData).Previous)
	})

	for _, it := range items {
		g.Add(it)
	}
	return g
}

// CheckedItem returns the currently checked member, or nil.
func (g *RadioGroup) CheckedItem() *Item {
	return g.checkedItem
}

// memberAdded wires the new member into the group and evaluates its checked
// state as if it had just changed.
func (g *RadioGroup) memberAdded(item *Item) {
	item.setRadioGroup(g)
	g.subs[item] = item.On("change:checked", func(ev event.Event) {
		if g.muted {
			return
		}
		g.checkedChanged(ev.Data.(ChangeData))
	})

	if item.Checked() {
		g.promote(item)
	}
}

// memberRemoved severs both sides of the relation. The removed item's own
// checked flag is deliberately left untouched.
func (g *RadioGroup) memberRemoved(item *Item) {
	if sub, ok := g.subs[item]; ok {
		sub.Cancel()
		delete(g.subs, item)
	}
	item.setRadioGroup(nil)
	if g.checkedItem == item {
		g.checkedItem = nil
	}
}

// rederive handles bulk reset: a reset does not emit per-item notifications,
// so the group walks the old members through the remove path and the new
// members through the add path explicitly.
func (g *RadioGroup) rederive(previous []*Item) {
	for _, it := range previous {
		g.memberRemoved(it)
	}
	for _, it := range g.Items() {
		g.memberAdded(it)
	}
}

func (g *RadioGroup) checkedChanged(data ChangeData) {
	if checked, _ := data.New.(bool); checked {
		g.promote(data.Item)
		return
	}
	if g.checkedItem == data.Item {
		g.checkedItem = nil
	}
}

// promote makes item the checked member, silently unchecking the previous
// one. The silent write still notifies views but skips the group's own
// handler, so coordination never recurses.
func (g *RadioGroup) promote(item *Item) {
	if g.checkedItem != nil && g.checkedItem != item {
		g.checkedItem.setChecked(false, true)
	}
	g.checkedItem = item
}

// mute runs fn with the group's coordination handler disabled.
func (g *RadioGroup) mute(fn func()) {
	g.muted = true
	fn()
	g.muted = false
}

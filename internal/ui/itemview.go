package ui

import (
	"fmt"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/event"
	"github.com/johnconnor-sec/menukit-go/internal/menu"
)

const checkGlyph = "✓"

// itemRow ties a menu item to its rendered element. index is the position
// within the menu's interactive items, or -1 for separators and headers.
type itemRow struct {
	item     *menu.Item
	el       *element.Element
	index    int
	checkSub *event.Subscription
	iconEl   *element.Element
}

func (r *itemRow) interactive() bool {
	return r.index >= 0
}

func (r *itemRow) teardown() {
	if r.checkSub != nil {
		r.checkSub.Cancel()
		r.checkSub = nil
	}
}

// renderRow builds the element for a single item. Custom child elements
// bypass the per-type templates but still track checked state so their
// aria-checked stays truthful.
func (m *MenuView) renderRow(it *menu.Item) *itemRow {
	if child := it.ChildEl(); child != nil {
		row := &itemRow{item: it, el: child, index: -1}
		if it.Type().Interactive() {
			row.index = 0 // reindexed by render
		}
		if it.Type().Checkable() {
			row.applyChecked(it.Checked())
			row.watchChecked()
		}
		return row
	}

	switch it.Type() {
	case menu.ItemTypeItem, menu.ItemTypeCheckbox, menu.ItemTypeRadio:
		return m.renderInteractive(it)
	case menu.ItemTypeSeparator:
		el := element.New(element.KindRule)
		el.SetAttribute("role", "separator")
		el.AddClass("menu-separator")
		return &itemRow{item: it, el: el, index: -1}
	case menu.ItemTypeHeader:
		el := element.New(element.KindHeader)
		el.SetAttribute("role", "presentation")
		el.AddClass("menu-header")
		el.SetText(it.Label())
		return &itemRow{item: it, el: el, index: -1}
	default:
		return nil
	}
}

func (m *MenuView) renderInteractive(it *menu.Item) *itemRow {
	kind := element.KindButton
	if it.URL() != "" {
		kind = element.KindLink
	}
	el := element.New(kind)
	el.AddClass("menu-item")
	if it.URL() != "" {
		el.SetAttribute("href", it.URL())
	}

	switch it.Type() {
	case menu.ItemTypeCheckbox:
		el.SetAttribute("role", "menuitemcheckbox")
	case menu.ItemTypeRadio:
		el.SetAttribute("role", "menuitemradio")
	default:
		el.SetAttribute("role", "menuitem")
	}
	if it.Disabled() {
		el.SetAttribute("aria-disabled", "true")
	}

	icon := element.New(element.KindLabel)
	icon.AddClass("menu-item-icon")
	if name := it.IconName(); name != "" {
		icon.SetAttribute("data-icon", name)
	}

	label := element.New(element.KindLabel)
	label.AddClass("menu-item-label")
	label.SetText(it.Label())

	el.ReplaceChildren(icon, label)
	if sc := it.Shortcut(); sc != "" {
		hint := element.New(element.KindLabel)
		hint.AddClass("menu-item-shortcut")
		hint.SetText(sc)
		el.ReplaceChildren(icon, label, hint)
	}

	el.Freeze()

	row := &itemRow{item: it, el: el, index: 0, iconEl: icon}
	if it.Type().Checkable() {
		row.applyChecked(it.Checked())
		row.watchChecked()
	}
	return row
}

// watchChecked keeps the row's checked presentation in sync with the item.
// Payloads that are not a bool are ignored.
func (r *itemRow) watchChecked() {
	r.checkSub = r.item.On("change:checked", func(ev event.Event) {
		data, ok := ev.Data.(menu.ChangeData)
		if !ok {
			return
		}
		checked, ok := data.New.(bool)
		if !ok {
			return
		}
		r.applyChecked(checked)
	})
}

// applyChecked updates the checked state in place so a toggle does not force
// a full menu re-render.
func (r *itemRow) applyChecked(checked bool) {
	r.el.SetAttribute("aria-checked", fmt.Sprintf("%t", checked))
	if r.iconEl == nil {
		return
	}
	if checked {
		r.iconEl.SetText(checkGlyph)
	} else {
		r.iconEl.SetText("")
	}
}

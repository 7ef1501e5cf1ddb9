// Package menu provides the menu item data model: typed items with
// type-dependent action semantics, an ordered item collection, and a radio
// group that keeps at most one member checked.
package menu

import (
	"fmt"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/errors"
	"github.com/johnconnor-sec/menukit-go/internal/event"
	"github.com/johnconnor-sec/menukit-go/internal/shortcut"
)

// ItemType identifies the kind of a menu entry.
type ItemType int

const (
	ItemTypeItem ItemType = iota
	ItemTypeCheckbox
	ItemTypeRadio
	ItemTypeSeparator
	ItemTypeHeader
)

// String returns the lowercase name of the item type.
func (t ItemType) String() string {
	switch t {
	case ItemTypeItem:
		return "item"
	case ItemTypeCheckbox:
		return "checkbox"
	case ItemTypeRadio:
		return "radio"
	case ItemTypeSeparator:
		return "separator"
	case ItemTypeHeader:
		return "header"
	default:
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
}

// Valid reports whether the value is a recognized item type.
func (t ItemType) Valid() bool {
	return t >= ItemTypeItem && t <= ItemTypeHeader
}

// Checkable reports whether the type carries a checked state.
func (t ItemType) Checkable() bool {
	return t == ItemTypeCheckbox || t == ItemTypeRadio
}

// Interactive reports whether the type participates in selection and
// activation. Separators and headers are decorative.
func (t ItemType) Interactive() bool {
	return t == ItemTypeItem || t.Checkable()
}

// ItemOptions configures a new Item. Only Type is required.
type ItemOptions struct {
	Type     ItemType
	Label    string
	Checked  *bool // checkbox/radio only; nil normalizes to false
	Disabled bool
	IconName string
	ID       string
	URL      string
	OnClick  func(*Item)

	// Shortcut and ShortcutRegistry must be supplied together.
	Shortcut         string
	ShortcutRegistry *shortcut.Registry

	// RadioGroup, when set on a radio item, adds the item to the group
	// during construction.
	RadioGroup *RadioGroup

	// ChildEl overrides the rendered row with a pre-built element.
	ChildEl *element.Element
}

// ChangeData is the payload of a "change:<attr>" event.
type ChangeData struct {
	Item *Item
	Old  any
	New  any
}

// Item is a single menu entry.
type Item struct {
	events event.Emitter

	itemType ItemType
	label    string
	checked  *bool
	disabled bool
	iconName string
	id       string
	url      string
	onClick  func(*Item)

	shortcut         string
	shortcutRegistry *shortcut.Registry

	radioGroup *RadioGroup
	childEl    *element.Element
}

// NewItem validates the options and constructs an item. An unrecognized type
// or an inconsistent option pairing fails immediately.
func NewItem(opts ItemOptions) (*Item, error) {
	if !opts.Type.Valid() {
		return nil, errors.InvalidItemTypeError(int(opts.Type))
	}
	if opts.Shortcut != "" && opts.ShortcutRegistry == nil {
		return nil, errors.OptionConflictError("MenuItem", "Shortcut", "ShortcutRegistry")
	}
	if opts.Shortcut == "" && opts.ShortcutRegistry != nil {
		return nil, errors.OptionConflictError("MenuItem", "ShortcutRegistry", "Shortcut")
	}

	it := &Item{
		itemType:         opts.Type,
		label:            opts.Label,
		disabled:         opts.Disabled,
		iconName:         opts.IconName,
		id:               opts.ID,
		url:              opts.URL,
		onClick:          opts.OnClick,
		shortcut:         opts.Shortcut,
		shortcutRegistry: opts.ShortcutRegistry,
		childEl:          opts.ChildEl,
	}

	// Checkable items never keep the unset sentinel: absent means false.
	if opts.Type.Checkable() {
		checked := false
		if opts.Checked != nil {
			checked = *opts.Checked
		}
		it.checked = &checked
	}

	if opts.Type == ItemTypeRadio && opts.RadioGroup != nil {
		opts.RadioGroup.Add(it)
	}

	return it, nil
}

// MustItem constructs an item and panics on validation failure. Intended for
// statically known item definitions.
func MustItem(opts ItemOptions) *Item {
	it, err := NewItem(opts)
	if err != nil {
		panic(err)
	}
	return it
}

// Type returns the item's type.
func (it *Item) Type() ItemType {
	return it.itemType
}

// Label returns the item's visible label.
func (it *Item) Label() string {
	return it.label
}

// SetLabel updates the label and notifies observers.
func (it *Item) SetLabel(label string) {
	if it.label == label {
		return
	}
	old := it.label
	it.label = label
	it.events.Emit("change:label", ChangeData{Item: it, Old: old, New: label})
}

// Checked reports the checked state; always false for non-checkable types.
func (it *Item) Checked() bool {
	return it.checked != nil && *it.checked
}

// SetChecked updates the checked state and notifies observers. It is a no-op
// for non-checkable types and for writes that do not change the value.
func (it *Item) SetChecked(checked bool) {
	it.setChecked(checked, false)
}

// setChecked is the internal write path. When silent, the radio group's own
// coordination handler ignores the change; views still observe it.
func (it *Item) setChecked(checked, silent bool) {
	if it.checked == nil || *it.checked == checked {
		return
	}
	old := *it.checked
	*it.checked = checked

	if silent && it.radioGroup != nil {
		it.radioGroup.mute(func() {
			it.events.Emit("change:checked", ChangeData{Item: it, Old: old, New: checked})
		})
		return
	}
	it.events.Emit("change:checked", ChangeData{Item: it, Old: old, New: checked})
}

// Disabled reports whether the item is disabled.
func (it *Item) Disabled() bool {
	return it.disabled
}

// SetDisabled updates the disabled flag and notifies observers.
func (it *Item) SetDisabled(disabled bool) {
	if it.disabled == disabled {
		return
	}
	it.disabled = disabled
	it.events.Emit("change:disabled", ChangeData{Item: it, Old: !disabled, New: disabled})
}

// IconName returns the item's icon name, if any.
func (it *Item) IconName() string {
	return it.iconName
}

// ID returns the item's identifier, if any.
func (it *Item) ID() string {
	return it.id
}

// URL returns the item's link target, if any.
func (it *Item) URL() string {
	return it.url
}

// Shortcut returns the display chord of the item's keyboard shortcut.
func (it *Item) Shortcut() string {
	return it.shortcut
}

// ShortcutRegistry returns the registry the shortcut is bound in.
func (it *Item) ShortcutRegistry() *shortcut.Registry {
	return it.shortcutRegistry
}

// RadioGroup returns the owning radio group, or nil.
func (it *Item) RadioGroup() *RadioGroup {
	return it.radioGroup
}

// ChildEl returns the pre-built row element override, or nil.
func (it *Item) ChildEl() *element.Element {
	return it.childEl
}

// On subscribes to one of the item's change notifications
// ("change:checked", "change:label", "change:disabled").
func (it *Item) On(name string, fn event.Handler) *event.Subscription {
	return it.events.On(name, fn)
}

// InvokeAction performs the item's type-dependent action. Disabled items and
// decorative items do nothing.
func (it *Item) InvokeAction() {
	if it.disabled {
		return
	}

	switch it.itemType {
	case ItemTypeCheckbox:
		it.SetChecked(!it.Checked())
		if it.onClick != nil {
			it.onClick(it)
		}
	case ItemTypeRadio:
		if !it.Checked() {
			it.SetChecked(true)
		}
		// The callback runs even when the item was already checked.
		if it.onClick != nil {
			it.onClick(it)
		}
	case ItemTypeItem:
		if it.onClick != nil {
			it.onClick(it)
		}
	case ItemTypeSeparator, ItemTypeHeader:
		return
	}
}

func (it *Item) setRadioGroup(g *RadioGroup) {
	it.radioGroup = g
}

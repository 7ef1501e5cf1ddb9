// Package ui implements the interactive views: the menu engine with its
// open/close state machine, keyboard and typeahead handling, the composite
// button/dialog/menu-handle views, and the tcell renderer that paints the
// element tree.
package ui

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/event"
	"github.com/johnconnor-sec/menukit-go/internal/menu"
	"github.com/johnconnor-sec/menukit-go/internal/output"
)

const (
	// DefaultCloseDelay is how long a menu lingers after the pointer leaves
	// before it closes.
	DefaultCloseDelay = 300 * time.Millisecond

	// DefaultTypeaheadTimeout is how long typed characters accumulate before
	// the typeahead buffer resets.
	DefaultTypeaheadTimeout = time.Second

	// animationsDisabledFor covers one render frame. Closing a menu to make
	// room for another suppresses transitions for this window so the swap
	// appears instant.
	animationsDisabledFor = 16 * time.Millisecond
)

var menuSeq atomic.Int64

// MenuViewOptions configures a MenuView.
type MenuViewOptions struct {
	// Items backs the menu. A nil collection is replaced with an empty one.
	Items *menu.Collection

	// ControllerEl is the element that toggles the menu (typically a
	// button). Nil for embedded or free-standing menus.
	ControllerEl *element.Element

	// Embedded menus are permanently open: they skip the global open slot,
	// the outside-click listener and the open/close lifecycle.
	Embedded bool

	AriaLabel      string
	AriaLabelledBy string

	// CloseDelay overrides DefaultCloseDelay when positive.
	CloseDelay time.Duration

	// TypeaheadTimeout overrides DefaultTypeaheadTimeout when positive.
	TypeaheadTimeout time.Duration

	// Dispatch, when set, marshals deferred work onto the host's event loop
	// (for tcell hosts, a closure around Screen.PostEvent). Without it a
	// deferred close runs on whichever goroutine next calls into the view;
	// the view itself never mutates state from a timer goroutine.
	Dispatch func(func())

	Logger *output.Logger
}

// OpenOptions controls a single open transition.
type OpenOptions struct {
	// Sticky keeps the menu open when the pointer leaves (keyboard and
	// click opens are sticky; hover opens are not).
	Sticky bool

	// CurrentIndex pre-selects an interactive item on open. Out-of-range
	// values wrap.
	CurrentIndex *int
}

// CloseOptions controls a single close transition.
type CloseOptions struct {
	// Delay defers the close by the menu's close delay; any selection or
	// re-open in the meantime cancels it. The close itself executes on the
	// host goroutine, never on the timer's.
	Delay bool

	// SkipAnimation suppresses transitions for one frame around the close.
	SkipAnimation bool
}

// MenuView renders a menu.Collection as a menu and runs its open/close,
// selection, keyboard and typeahead behavior.
type MenuView struct {
	collection *menu.Collection
	el         *element.Element
	controller *element.Element
	logger     *output.Logger
	typeahead  *TypeaheadBuffer
	events     event.Emitter

	menuID     string
	embedded   bool
	closeDelay time.Duration
	dispatch   func(func())

	isOpen       bool
	sticky       bool
	currentIndex int
	lastIndex    int

	rows        []*itemRow
	interactive []*itemRow

	timerMu       sync.Mutex
	closePending  bool
	closeDeadline time.Time
	closeTimer    *time.Timer
	animTimer     *time.Timer
	animsOff      bool

	collSubs []*event.Subscription
}

// NewMenuView builds the menu element tree and wires it to the collection.
// The view re-renders on collection updates and tracks checked-state changes
// in place.
func NewMenuView(opts MenuViewOptions) *MenuView {
	if opts.Items == nil {
		opts.Items = menu.NewCollection()
	}
	logger := opts.Logger
	if logger == nil {
		logger = output.GetGlobalLogger()
	}
	closeDelay := opts.CloseDelay
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	typeaheadTimeout := opts.TypeaheadTimeout
	if typeaheadTimeout <= 0 {
		typeaheadTimeout = DefaultTypeaheadTimeout
	}

	m := &MenuView{
		collection:   opts.Items,
		controller:   opts.ControllerEl,
		logger:       logger,
		typeahead:    NewTypeaheadBuffer(typeaheadTimeout),
		menuID:       fmt.Sprintf("menukit-menu-%d", menuSeq.Add(1)),
		embedded:     opts.Embedded,
		closeDelay:   closeDelay,
		dispatch:     opts.Dispatch,
		currentIndex: -1,
		lastIndex:    -1,
	}

	m.el = element.New(element.KindList)
	m.el.AddClass("menu")
	m.el.SetAttribute("role", "menu")
	m.el.SetAttribute("id", m.menuID)
	if opts.AriaLabel != "" {
		m.el.SetAttribute("aria-label", opts.AriaLabel)
	}
	if opts.AriaLabelledBy != "" {
		m.el.SetAttribute("aria-labelledby", opts.AriaLabelledBy)
	}
	if m.embedded {
		m.el.AddClass("-embedded")
		m.el.AddClass("-is-open")
	}

	if m.controller != nil && !m.embedded {
		m.controller.SetAttribute("aria-haspopup", "menu")
		m.controller.SetAttribute("aria-controls", m.menuID)
		m.controller.SetAttribute("aria-expanded", "false")
	}

	m.collSubs = append(m.collSubs,
		m.collection.On("update", func(event.Event) { m.render() }),
		m.collection.On("reset", func(event.Event) { m.render() }),
	)

	m.typeahead.On("bufferChanged", func(ev event.Event) {
		query, _ := ev.Data.(string)
		if query == "" {
			return
		}
		m.jumpToTypeaheadMatch()
	})

	m.render()
	return m
}

// El returns the menu's root element.
func (m *MenuView) El() *element.Element {
	return m.el
}

// ID returns the menu element's id.
func (m *MenuView) ID() string {
	return m.menuID
}

// Items returns the backing collection.
func (m *MenuView) Items() *menu.Collection {
	return m.collection
}

// IsOpen reports whether the menu is open. Embedded menus are always open.
// A deferred close whose deadline has passed takes effect here, on the
// caller's goroutine.
func (m *MenuView) IsOpen() bool {
	if m.embedded {
		return true
	}
	m.flushDelayedClose()
	return m.isOpen
}

// On subscribes to lifecycle events: "opening", "opened", "closing",
// "closed".
func (m *MenuView) On(name string, fn event.Handler) *event.Subscription {
	return m.events.On(name, fn)
}

// render rebuilds the row elements from the collection. Selection is
// preserved by interactive index when still in range.
func (m *MenuView) render() {
	for _, row := range m.rows {
		row.teardown()
	}
	m.rows = m.rows[:0]
	m.interactive = m.interactive[:0]

	for i, it := range m.collection.Items() {
		if it == nil || !it.Type().Valid() {
			m.logger.Warn("skipping unrenderable menu item", map[string]any{
				"menu":     m.menuID,
				"position": i,
			})
			continue
		}
		row := m.renderRow(it)
		if row == nil {
			m.logger.Warn("skipping menu item of unknown type", map[string]any{
				"menu": m.menuID,
				"type": int(it.Type()),
			})
			continue
		}
		if row.interactive() {
			row.index = len(m.interactive)
			row.el.SetAttribute("id", fmt.Sprintf("%s-item-%d", m.menuID, row.index))
			row.el.SetAttribute("data-item-index", strconv.Itoa(row.index))
			row.el.SetAttribute("aria-selected", "false")
			row.el.SetAttribute("tabindex", "-1")
			m.interactive = append(m.interactive, row)
		}
		m.rows = append(m.rows, row)
	}

	els := make([]*element.Element, len(m.rows))
	for i, row := range m.rows {
		els[i] = row.el
	}
	m.el.ReplaceChildren(els...)

	if m.currentIndex >= len(m.interactive) {
		m.clearSelection()
	} else if m.currentIndex >= 0 {
		m.applySelection(m.currentIndex)
	}
	if m.lastIndex >= len(m.interactive) {
		m.lastIndex = -1
	}
}

// Open opens the menu, closing any other open menu first. Opening an already
// open menu only escalates stickiness and cancels a pending delayed close.
func (m *MenuView) Open(opts OpenOptions) {
	if m.embedded {
		if opts.CurrentIndex != nil {
			m.SetCurrentItem(opts.CurrentIndex)
		}
		return
	}

	m.cancelDelayedClose()
	if m.isOpen {
		if opts.Sticky {
			m.sticky = true
		}
		return
	}

	if rival := CurrentOpenMenu(); rival != nil && rival != m {
		rival.Close(CloseOptions{SkipAnimation: true})
	}

	m.events.Emit("opening", m)
	m.isOpen = true
	m.sticky = opts.Sticky
	m.el.AddClass("-is-open")

	if opts.CurrentIndex != nil {
		m.setCurrentItem(opts.CurrentIndex)
	}

	setOpenMenu(m)
	registerOutsideClick(m)

	if m.controller != nil {
		m.controller.SetAttribute("aria-expanded", "true")
		m.controller.AddClass("-hover")
	}

	m.logger.Debug("menu opened", map[string]any{"menu": m.menuID, "sticky": m.sticky})
	m.events.Emit("opened", m)
}

// Close closes the menu. Embedded menus only clear their selection.
func (m *MenuView) Close(opts CloseOptions) {
	if m.embedded {
		m.clearSelection()
		return
	}
	if !m.isOpen {
		return
	}
	m.clearSelection()

	if opts.Delay {
		m.scheduleClose()
		return
	}
	m.cancelDelayedClose()

	if opts.SkipAnimation {
		m.disableAnimations()
	}

	m.events.Emit("closing", m)
	m.typeahead.Clear()
	m.el.RemoveClass("-is-open")

	if m.controller != nil {
		m.controller.SetAttribute("aria-expanded", "false")
		m.controller.RemoveClass("-hover")
	}

	clearOpenMenu(m)
	unregisterOutsideClick(m)
	m.isOpen = false
	m.sticky = false

	m.logger.Debug("menu closed", map[string]any{"menu": m.menuID})
	m.events.Emit("closed", m)
}

// Toggle closes the menu when open, opens it otherwise.
func (m *MenuView) Toggle(openOpts OpenOptions, closeOpts CloseOptions) {
	if m.embedded {
		return
	}
	if m.isOpen {
		m.Close(closeOpts)
	} else {
		m.Open(openOpts)
	}
}

// scheduleClose records the close deadline. The timer goroutine only hands
// the flush to the dispatcher; it never touches view state itself, so hosts
// driving the view from a single event loop stay race-free.
func (m *MenuView) scheduleClose() {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	m.closePending = true
	m.closeDeadline = time.Now().Add(m.closeDelay)
	if m.closeTimer != nil {
		m.closeTimer.Stop()
		m.closeTimer = nil
	}
	if m.dispatch != nil {
		m.closeTimer = time.AfterFunc(m.closeDelay, func() {
			m.dispatch(m.flushDelayedClose)
		})
	}
}

func (m *MenuView) cancelDelayedClose() {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	m.closePending = false
	if m.closeTimer != nil {
		m.closeTimer.Stop()
		m.closeTimer = nil
	}
}

// flushDelayedClose performs a pending deferred close once its deadline has
// passed. Stale wake-ups are harmless: the deadline check decides.
func (m *MenuView) flushDelayedClose() {
	m.timerMu.Lock()
	due := m.closePending && !time.Now().Before(m.closeDeadline)
	if due {
		m.closePending = false
	}
	m.timerMu.Unlock()
	if due {
		m.Close(CloseOptions{})
	}
}

// disableAnimations suppresses transitions for one frame. The renderer
// checks AnimationsDisabled before animating open/close transitions.
func (m *MenuView) disableAnimations() {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	m.animsOff = true
	if m.animTimer != nil {
		m.animTimer.Stop()
	}
	m.animTimer = time.AfterFunc(animationsDisabledFor, func() {
		m.timerMu.Lock()
		m.animsOff = false
		m.timerMu.Unlock()
	})
}

// AnimationsDisabled reports whether transitions are suppressed right now.
func (m *MenuView) AnimationsDisabled() bool {
	m.timerMu.Lock()
	defer m.timerMu.Unlock()
	return m.animsOff
}

// SetCurrentItem selects the interactive item at the given index, wrapping
// out-of-range values. Nil clears the selection. Selecting cancels a pending
// delayed close.
func (m *MenuView) SetCurrentItem(index *int) {
	m.cancelDelayedClose()
	m.setCurrentItem(index)
}

func (m *MenuView) setCurrentItem(index *int) {
	if index == nil || len(m.interactive) == 0 {
		m.clearSelection()
		return
	}

	i := *index
	n := len(m.interactive)
	if i < 0 {
		i = n - 1
	} else if i >= n {
		i = 0
	}

	if m.currentIndex >= 0 && m.currentIndex < n && m.currentIndex != i {
		m.unapplySelection(m.currentIndex)
	}
	m.applySelection(i)
	m.currentIndex = i
	m.lastIndex = i
	SetFocus(m.interactive[i].el)
}

func (m *MenuView) applySelection(i int) {
	row := m.interactive[i]
	row.el.SetAttribute("aria-selected", "true")
	row.el.SetAttribute("tabindex", "0")
	id, _ := row.el.Attribute("id")
	m.el.SetAttribute("aria-activedescendant", id)
}

func (m *MenuView) unapplySelection(i int) {
	row := m.interactive[i]
	row.el.SetAttribute("aria-selected", "false")
	row.el.SetAttribute("tabindex", "-1")
}

func (m *MenuView) clearSelection() {
	if m.currentIndex >= 0 && m.currentIndex < len(m.interactive) {
		m.unapplySelection(m.currentIndex)
	}
	m.currentIndex = -1
	m.el.RemoveAttribute("aria-activedescendant")
}

// CurrentIndex returns the selected interactive index, or -1.
func (m *MenuView) CurrentIndex() int {
	return m.currentIndex
}

// CurrentItem returns the selected item, or nil.
func (m *MenuView) CurrentItem() *menu.Item {
	if m.currentIndex < 0 || m.currentIndex >= len(m.interactive) {
		return nil
	}
	return m.interactive[m.currentIndex].item
}

// InteractiveLen returns the number of interactive items currently rendered.
func (m *MenuView) InteractiveLen() int {
	return len(m.interactive)
}

// HandleKey processes a key event for an open menu and reports whether it
// was consumed.
func (m *MenuView) HandleKey(ev *tcell.EventKey) bool {
	if !m.IsOpen() {
		return false
	}

	switch ev.Key() {
	case tcell.KeyDown:
		next := 0
		if m.currentIndex >= 0 {
			next = m.currentIndex + 1
		}
		m.SetCurrentItem(&next)
		return true
	case tcell.KeyUp:
		prev := -1
		if m.currentIndex >= 0 {
			prev = m.currentIndex - 1
		}
		m.SetCurrentItem(&prev)
		return true
	case tcell.KeyHome, tcell.KeyPgUp:
		first := 0
		m.SetCurrentItem(&first)
		return true
	case tcell.KeyEnd, tcell.KeyPgDn:
		last := len(m.interactive) - 1
		if last < 0 {
			return true
		}
		m.SetCurrentItem(&last)
		return true
	case tcell.KeyEnter:
		m.activateCurrent(true)
		return true
	case tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab:
		m.Close(CloseOptions{SkipAnimation: true})
		if m.controller != nil {
			SetFocus(m.controller)
		}
		return true
	case tcell.KeyRune:
		// Space activates, unless a typeahead query is in flight; then it is
		// part of the query ("item 12").
		if ev.Rune() == ' ' && m.typeahead.Value() == "" {
			m.activateCurrent(false)
			return true
		}
		return m.typeahead.HandleKeyDown(ev)
	}
	return false
}

// activateCurrent invokes the selected item. Enter always closes afterwards;
// Space keeps checkable items open so several can be toggled in a row.
func (m *MenuView) activateCurrent(alwaysClose bool) {
	it := m.CurrentItem()
	if it == nil || it.Disabled() {
		return
	}
	it.InvokeAction()
	if alwaysClose || !it.Type().Checkable() {
		m.Close(CloseOptions{})
		if m.controller != nil {
			SetFocus(m.controller)
		}
	}
}

func (m *MenuView) jumpToTypeaheadMatch() {
	n := len(m.interactive)
	if n == 0 {
		return
	}
	first := 0
	last := n - 1
	if m.currentIndex >= 0 {
		first = (m.currentIndex + 1) % n
		last = m.currentIndex
	}
	idx, ok := m.typeahead.FindItemForBuffer(ItemRange{
		FirstItem: first,
		LastItem:  last,
		GetItemText: func(i int) string {
			return m.interactive[i].item.Label()
		},
		GetNextItem: func(i int) int {
			return (i + 1) % n
		},
	})
	if !ok {
		return
	}
	m.SetCurrentItem(&idx)
}

// rowFor walks up from target to the interactive row containing it, if any.
func (m *MenuView) rowFor(target *element.Element) *itemRow {
	if target == nil {
		return nil
	}
	for _, row := range m.interactive {
		if row.el.Contains(target) {
			return row
		}
	}
	return nil
}

// HandleMouseOver selects the hovered item, or clears the selection when the
// pointer is over a non-interactive part of the menu.
func (m *MenuView) HandleMouseOver(target *element.Element) {
	if !m.IsOpen() {
		return
	}
	if row := m.rowFor(target); row != nil {
		i := row.index
		m.SetCurrentItem(&i)
		return
	}
	if m.el.Contains(target) {
		m.cancelDelayedClose()
		m.clearSelection()
	}
}

// HandleMouseLeave clears selection and schedules a delayed close, unless
// the menu is sticky-open.
func (m *MenuView) HandleMouseLeave() {
	if !m.IsOpen() || m.sticky {
		return
	}
	m.clearSelection()
	m.Close(CloseOptions{Delay: true})
}

// HandleFocusIn restores the last selection when the menu element itself
// receives focus, falling back to the first item.
func (m *MenuView) HandleFocusIn(target *element.Element) {
	if target != m.el || len(m.interactive) == 0 {
		return
	}
	i := m.lastIndex
	if i < 0 || i >= len(m.interactive) {
		i = 0
	}
	m.SetCurrentItem(&i)
}

// HandleFocusOut closes the menu when focus moves outside the menu and its
// controller. Embedded menus only drop their selection.
func (m *MenuView) HandleFocusOut(next *element.Element) {
	if next != nil {
		if m.el.Contains(next) {
			return
		}
		if m.controller != nil && m.controller.Contains(next) {
			return
		}
	}
	if m.embedded {
		m.clearSelection()
		return
	}
	m.Close(CloseOptions{})
}

// HandleClick activates the clicked item. Plain items close the menu;
// checkable items keep it open.
func (m *MenuView) HandleClick(target *element.Element) {
	if !m.IsOpen() {
		return
	}
	row := m.rowFor(target)
	if row == nil || row.item.Disabled() {
		return
	}
	i := row.index
	m.SetCurrentItem(&i)
	row.item.InvokeAction()
	if !row.item.Type().Checkable() {
		m.Close(CloseOptions{})
	}
}

// Teardown cancels subscriptions and timers. The view must not be used
// afterwards.
func (m *MenuView) Teardown() {
	m.Close(CloseOptions{SkipAnimation: true})
	m.cancelDelayedClose()
	m.timerMu.Lock()
	if m.animTimer != nil {
		m.animTimer.Stop()
		m.animTimer = nil
	}
	m.timerMu.Unlock()
	m.typeahead.Clear()
	for _, sub := range m.collSubs {
		sub.Cancel()
	}
	m.collSubs = nil
	for _, row := range m.rows {
		row.teardown()
	}
	clearOpenMenu(m)
	unregisterOutsideClick(m)
}

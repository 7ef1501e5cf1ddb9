package ui

import (
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/event"
	"github.com/johnconnor-sec/menukit-go/internal/menu"
	"github.com/johnconnor-sec/menukit-go/internal/output"
)

func resetUIState(t *testing.T) {
	t.Helper()
	ResetOpenMenu()
	ResetFocus()
	t.Cleanup(func() {
		ResetOpenMenu()
		ResetFocus()
	})
}

func quietLogger() *output.Logger {
	return output.NewLogger().SetOutputs(io.Discard)
}

func plainItem(t *testing.T, label string) *menu.Item {
	t.Helper()
	return menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeItem, Label: label})
}

func checkboxItem(t *testing.T, label string, checked bool) *menu.Item {
	t.Helper()
	return menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeCheckbox,
		Label:   label,
		Checked: &checked,
	})
}

func newTestMenu(t *testing.T, items ...*menu.Item) *MenuView {
	t.Helper()
	return NewMenuView(MenuViewOptions{
		Items:  menu.NewCollection(items...),
		Logger: quietLogger(),
	})
}

func attr(t *testing.T, el *element.Element, name string) string {
	t.Helper()
	v, _ := el.Attribute(name)
	return v
}

func TestMenuView_OpenClose(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "Open"), plainItem(t, "Save"))

	if m.IsOpen() {
		t.Fatal("Expected menu to start closed")
	}

	m.Open(OpenOptions{Sticky: true})
	if !m.IsOpen() {
		t.Error("Expected menu to be open")
	}
	if !m.El().HasClass("-is-open") {
		t.Error("Expected -is-open class while open")
	}
	if CurrentOpenMenu() != m {
		t.Error("Expected menu to hold the open slot")
	}

	m.Close(CloseOptions{})
	if m.IsOpen() {
		t.Error("Expected menu to be closed")
	}
	if m.El().HasClass("-is-open") {
		t.Error("Expected -is-open class to be removed")
	}
	if CurrentOpenMenu() != nil {
		t.Error("Expected the open slot to be empty")
	}
}

func TestMenuView_OpenClosesRival(t *testing.T) {
	resetUIState(t)
	m1 := newTestMenu(t, plainItem(t, "A"))
	m2 := newTestMenu(t, plainItem(t, "B"))

	m1.Open(OpenOptions{})
	m2.Open(OpenOptions{})

	if m1.IsOpen() {
		t.Error("Expected first menu to be closed by the second opening")
	}
	if !m2.IsOpen() {
		t.Error("Expected second menu to be open")
	}
	if CurrentOpenMenu() != m2 {
		t.Error("Expected second menu to hold the open slot")
	}
	if !m1.AnimationsDisabled() {
		t.Error("Expected rival close to suppress animations")
	}
}

func TestMenuView_ReopenEscalatesSticky(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"))

	opened := 0
	m.On("opened", func(event.Event) { opened++ })

	m.Open(OpenOptions{})
	m.Open(OpenOptions{Sticky: true})

	if opened != 1 {
		t.Errorf("Expected a single opened event, got %d", opened)
	}
	if !m.sticky {
		t.Error("Expected re-open to escalate to sticky")
	}

	// Sticky menus ignore pointer leave.
	m.HandleMouseLeave()
	if !m.IsOpen() {
		t.Error("Expected sticky menu to stay open on mouse leave")
	}
}

func TestMenuView_LifecycleEventOrder(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"))

	var order []string
	for _, name := range []string{"opening", "opened", "closing", "closed"} {
		name := name
		m.On(name, func(event.Event) { order = append(order, name) })
	}

	m.Open(OpenOptions{})
	m.Close(CloseOptions{})

	want := []string{"opening", "opened", "closing", "closed"}
	if len(order) != len(want) {
		t.Fatalf("Expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, order)
		}
	}
}

func TestMenuView_ControllerAttributes(t *testing.T) {
	resetUIState(t)
	controller := element.New(element.KindButton)
	m := NewMenuView(MenuViewOptions{
		Items:        menu.NewCollection(plainItem(t, "A")),
		ControllerEl: controller,
		Logger:       quietLogger(),
	})

	if got := attr(t, controller, "aria-haspopup"); got != "menu" {
		t.Errorf("Expected aria-haspopup=menu, got %q", got)
	}
	if got := attr(t, controller, "aria-controls"); got != m.ID() {
		t.Errorf("Expected aria-controls=%q, got %q", m.ID(), got)
	}
	if got := attr(t, controller, "aria-expanded"); got != "false" {
		t.Errorf("Expected aria-expanded=false, got %q", got)
	}

	m.Open(OpenOptions{})
	if got := attr(t, controller, "aria-expanded"); got != "true" {
		t.Errorf("Expected aria-expanded=true while open, got %q", got)
	}
	if !controller.HasClass("-hover") {
		t.Error("Expected hover class on controller while open")
	}

	m.Close(CloseOptions{})
	if got := attr(t, controller, "aria-expanded"); got != "false" {
		t.Errorf("Expected aria-expanded=false after close, got %q", got)
	}
	if controller.HasClass("-hover") {
		t.Error("Expected hover class removed after close")
	}
}

func TestMenuView_SelectionAttributes(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"), plainItem(t, "B"))
	m.Open(OpenOptions{})

	one := 1
	m.SetCurrentItem(&one)

	rowB := m.interactive[1].el
	if got := attr(t, rowB, "aria-selected"); got != "true" {
		t.Errorf("Expected aria-selected=true, got %q", got)
	}
	if got := attr(t, rowB, "tabindex"); got != "0" {
		t.Errorf("Expected tabindex=0, got %q", got)
	}
	if got := attr(t, m.El(), "aria-activedescendant"); got != attr(t, rowB, "id") {
		t.Errorf("Expected aria-activedescendant to reference the selected row, got %q", got)
	}
	if FocusedElement() != rowB {
		t.Error("Expected focus to follow the selection")
	}

	zero := 0
	m.SetCurrentItem(&zero)
	if got := attr(t, rowB, "aria-selected"); got != "false" {
		t.Errorf("Expected previous row deselected, got aria-selected=%q", got)
	}
	if got := attr(t, rowB, "tabindex"); got != "-1" {
		t.Errorf("Expected previous row tabindex=-1, got %q", got)
	}

	m.SetCurrentItem(nil)
	if _, ok := m.El().Attribute("aria-activedescendant"); ok {
		t.Error("Expected aria-activedescendant removed when selection cleared")
	}
}

func TestMenuView_KeyboardWraparound(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"), plainItem(t, "B"), plainItem(t, "C"))
	m.Open(OpenOptions{})

	last := 2
	m.SetCurrentItem(&last)
	m.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if m.CurrentIndex() != 0 {
		t.Errorf("Expected Down at the end to wrap to 0, got %d", m.CurrentIndex())
	}

	m.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if m.CurrentIndex() != 2 {
		t.Errorf("Expected Up at the start to wrap to 2, got %d", m.CurrentIndex())
	}

	m.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	if m.CurrentIndex() != 0 {
		t.Errorf("Expected Home to select 0, got %d", m.CurrentIndex())
	}

	m.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if m.CurrentIndex() != 2 {
		t.Errorf("Expected End to select the last item, got %d", m.CurrentIndex())
	}
}

func TestMenuView_SeparatorsAndHeadersNotInteractive(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t,
		plainItem(t, "A"),
		menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeSeparator}),
		menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeHeader, Label: "Section"}),
		plainItem(t, "B"),
	)
	m.Open(OpenOptions{})

	if len(m.El().Children()) != 4 {
		t.Fatalf("Expected 4 rendered rows, got %d", len(m.El().Children()))
	}
	if m.InteractiveLen() != 2 {
		t.Fatalf("Expected 2 interactive items, got %d", m.InteractiveLen())
	}

	zero := 0
	m.SetCurrentItem(&zero)
	m.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if got := m.CurrentItem().Label(); got != "B" {
		t.Errorf("Expected Down to skip decorative rows and land on B, got %q", got)
	}

	sep := m.El().Children()[1]
	if _, ok := sep.Attribute("data-item-index"); ok {
		t.Error("Expected separator to carry no interactive index")
	}
	if got := attr(t, sep, "role"); got != "separator" {
		t.Errorf("Expected role=separator, got %q", got)
	}
	if got := attr(t, m.El().Children()[2], "role"); got != "presentation" {
		t.Errorf("Expected header role=presentation, got %q", got)
	}
}

func TestMenuView_EnterClosesAfterCheckboxToggle(t *testing.T) {
	resetUIState(t)
	cb := checkboxItem(t, "Word wrap", false)
	m := newTestMenu(t, cb)

	zero := 0
	m.Open(OpenOptions{Sticky: true, CurrentIndex: &zero})
	m.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if !cb.Checked() {
		t.Error("Expected Enter to toggle the checkbox")
	}
	if m.IsOpen() {
		t.Error("Expected Enter to close the menu after toggling")
	}
}

func TestMenuView_SpaceKeepsCheckableOpen(t *testing.T) {
	resetUIState(t)
	cb := checkboxItem(t, "Word wrap", false)
	m := newTestMenu(t, cb, plainItem(t, "Quit"))

	zero := 0
	m.Open(OpenOptions{Sticky: true, CurrentIndex: &zero})
	m.HandleKey(keyRune(' '))

	if !cb.Checked() {
		t.Error("Expected Space to toggle the checkbox")
	}
	if !m.IsOpen() {
		t.Error("Expected Space on a checkable item to leave the menu open")
	}

	// On a plain item Space activates and closes.
	one := 1
	m.SetCurrentItem(&one)
	m.HandleKey(keyRune(' '))
	if m.IsOpen() {
		t.Error("Expected Space on a plain item to close the menu")
	}
}

func TestMenuView_EscapeClosesAndReturnsFocus(t *testing.T) {
	resetUIState(t)
	controller := element.New(element.KindButton)
	m := NewMenuView(MenuViewOptions{
		Items:        menu.NewCollection(plainItem(t, "A")),
		ControllerEl: controller,
		Logger:       quietLogger(),
	})

	zero := 0
	m.Open(OpenOptions{Sticky: true, CurrentIndex: &zero})
	m.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if m.IsOpen() {
		t.Error("Expected Escape to close the menu")
	}
	if FocusedElement() != controller {
		t.Error("Expected focus to return to the controller")
	}
	if !m.AnimationsDisabled() {
		t.Error("Expected Escape close to suppress animations")
	}
}

func TestMenuView_DisabledItemNotActivated(t *testing.T) {
	resetUIState(t)
	called := false
	it := menu.MustItem(menu.ItemOptions{
		Type:     menu.ItemTypeItem,
		Label:    "Paste",
		Disabled: true,
		OnClick:  func(*menu.Item) { called = true },
	})
	m := newTestMenu(t, it)

	zero := 0
	m.Open(OpenOptions{Sticky: true, CurrentIndex: &zero})
	m.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if called {
		t.Error("Expected disabled item not to run its action")
	}
	if !m.IsOpen() {
		t.Error("Expected menu to stay open when activation is refused")
	}
}

func TestMenuView_TypeaheadJumpsToMatch(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t,
		plainItem(t, "Item 1"),
		plainItem(t, "Item 123"),
		plainItem(t, "Item 456"),
	)
	m.Open(OpenOptions{Sticky: true})

	for _, r := range "item 12" {
		if !m.HandleKey(keyRune(r)) {
			t.Fatalf("Expected rune %q to be consumed", r)
		}
	}

	if got := m.CurrentIndex(); got != 1 {
		t.Errorf("Expected typeahead to land on index 1, got %d", got)
	}
	if got := m.CurrentItem().Label(); got != "Item 123" {
		t.Errorf("Expected Item 123 selected, got %q", got)
	}
	if !m.IsOpen() {
		t.Error("Expected typeahead not to close the menu")
	}
}

func TestMenuView_TypeaheadSearchesForwardFromCurrent(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t,
		plainItem(t, "Alpha"),
		plainItem(t, "Beta"),
		plainItem(t, "Alps"),
	)
	zero := 0
	m.Open(OpenOptions{Sticky: true, CurrentIndex: &zero})

	m.HandleKey(keyRune('a'))
	if got := m.CurrentIndex(); got != 2 {
		t.Errorf("Expected search to start after the current item, got index %d", got)
	}
}

func TestMenuView_DelayedClose(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:      menu.NewCollection(plainItem(t, "A")),
		CloseDelay: 20 * time.Millisecond,
		Logger:     quietLogger(),
	})

	m.Open(OpenOptions{})
	m.Close(CloseOptions{Delay: true})
	if !m.IsOpen() {
		t.Fatal("Expected delayed close to leave the menu open initially")
	}

	time.Sleep(80 * time.Millisecond)
	if m.IsOpen() {
		t.Error("Expected menu to close after the delay")
	}
}

func TestMenuView_SelectionCancelsDelayedClose(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:      menu.NewCollection(plainItem(t, "A")),
		CloseDelay: 20 * time.Millisecond,
		Logger:     quietLogger(),
	})

	m.Open(OpenOptions{})
	m.Close(CloseOptions{Delay: true})
	zero := 0
	m.SetCurrentItem(&zero)

	time.Sleep(80 * time.Millisecond)
	if !m.IsOpen() {
		t.Error("Expected selection to cancel the pending close")
	}
}

func TestMenuView_DelayedCloseRunsOnCallerGoroutine(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:      menu.NewCollection(plainItem(t, "A")),
		CloseDelay: 20 * time.Millisecond,
		Logger:     quietLogger(),
	})

	closed := false
	m.On("closed", func(event.Event) { closed = true })

	m.Open(OpenOptions{})
	m.Close(CloseOptions{Delay: true})

	// Without a dispatcher the timer never closes the menu by itself; the
	// close takes effect on the next call into the view.
	time.Sleep(80 * time.Millisecond)
	if closed {
		t.Fatal("Expected the deferred close to wait for the view to be touched")
	}
	if m.IsOpen() {
		t.Error("Expected the menu to close once touched after the delay")
	}
	if !closed {
		t.Error("Expected the closed event to fire during the call")
	}
}

func TestMenuView_DispatchDeliversDeferredClose(t *testing.T) {
	resetUIState(t)
	work := make(chan func(), 1)
	m := NewMenuView(MenuViewOptions{
		Items:      menu.NewCollection(plainItem(t, "A")),
		CloseDelay: 10 * time.Millisecond,
		Dispatch:   func(fn func()) { work <- fn },
		Logger:     quietLogger(),
	})

	m.Open(OpenOptions{})
	m.Close(CloseOptions{Delay: true})

	select {
	case fn := <-work:
		fn()
	case <-time.After(time.Second):
		t.Fatal("Expected the close timer to hand work to the dispatcher")
	}
	if m.IsOpen() {
		t.Error("Expected the dispatched close to take effect")
	}
}

func TestMenuView_OutsideClickCloses(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"))
	m.Open(OpenOptions{Sticky: true})

	// A click inside the menu does not close it.
	DispatchDocumentClick(m.interactive[0].el)
	if !m.IsOpen() {
		t.Fatal("Expected click inside the menu to be ignored")
	}

	elsewhere := element.New(element.KindBox)
	DispatchDocumentClick(elsewhere)
	if m.IsOpen() {
		t.Error("Expected outside click to close the menu")
	}

	// The listener is one-shot: once closed, further clicks are inert.
	DispatchDocumentClick(elsewhere)
}

func TestMenuView_ClickActivation(t *testing.T) {
	resetUIState(t)
	cb := checkboxItem(t, "Gridlines", false)
	quitRan := false
	quit := menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeItem,
		Label:   "Quit",
		OnClick: func(*menu.Item) { quitRan = true },
	})
	m := newTestMenu(t, cb, quit)
	m.Open(OpenOptions{Sticky: true})

	m.HandleClick(m.interactive[0].el)
	if !cb.Checked() {
		t.Error("Expected click to toggle the checkbox")
	}
	if !m.IsOpen() {
		t.Error("Expected checkable click to keep the menu open")
	}

	m.HandleClick(m.interactive[1].el)
	if !quitRan {
		t.Error("Expected click to run the item action")
	}
	if m.IsOpen() {
		t.Error("Expected plain item click to close the menu")
	}
}

func TestMenuView_MouseOverSelects(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"), plainItem(t, "B"))
	m.Open(OpenOptions{})

	// Hovering a row's label selects the containing row.
	label := m.interactive[1].el.Children()[1]
	m.HandleMouseOver(label)
	if m.CurrentIndex() != 1 {
		t.Errorf("Expected hover to select index 1, got %d", m.CurrentIndex())
	}

	// Hovering the menu background clears the selection.
	m.HandleMouseOver(m.El())
	if m.CurrentIndex() != -1 {
		t.Errorf("Expected hover over background to clear selection, got %d", m.CurrentIndex())
	}
}

func TestMenuView_MouseLeaveSchedulesClose(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:      menu.NewCollection(plainItem(t, "A")),
		CloseDelay: 20 * time.Millisecond,
		Logger:     quietLogger(),
	})

	m.Open(OpenOptions{})
	m.HandleMouseLeave()
	if !m.IsOpen() {
		t.Fatal("Expected leave to defer the close")
	}
	time.Sleep(80 * time.Millisecond)
	if m.IsOpen() {
		t.Error("Expected menu to close after the pointer left")
	}
}

func TestMenuView_FocusInRestoresSelection(t *testing.T) {
	resetUIState(t)
	m := newTestMenu(t, plainItem(t, "A"), plainItem(t, "B"))
	m.Open(OpenOptions{Sticky: true})

	one := 1
	m.SetCurrentItem(&one)
	m.SetCurrentItem(nil)

	m.HandleFocusIn(m.El())
	if m.CurrentIndex() != 1 {
		t.Errorf("Expected focus-in to restore the last selection, got %d", m.CurrentIndex())
	}
}

func TestMenuView_FocusOutCloses(t *testing.T) {
	resetUIState(t)
	controller := element.New(element.KindButton)
	m := NewMenuView(MenuViewOptions{
		Items:        menu.NewCollection(plainItem(t, "A")),
		ControllerEl: controller,
		Logger:       quietLogger(),
	})
	m.Open(OpenOptions{Sticky: true})

	// Focus moving to the controller keeps the menu open.
	m.HandleFocusOut(controller)
	if !m.IsOpen() {
		t.Fatal("Expected focus on the controller to keep the menu open")
	}

	m.HandleFocusOut(element.New(element.KindBox))
	if m.IsOpen() {
		t.Error("Expected focus leaving the composite to close the menu")
	}
}

func TestMenuView_EmbeddedAlwaysOpen(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:    menu.NewCollection(plainItem(t, "A")),
		Embedded: true,
		Logger:   quietLogger(),
	})

	if !m.IsOpen() {
		t.Fatal("Expected embedded menu to report open")
	}
	if CurrentOpenMenu() != nil {
		t.Error("Expected embedded menu to stay out of the open slot")
	}

	zero := 0
	m.SetCurrentItem(&zero)
	m.Close(CloseOptions{})
	if !m.IsOpen() {
		t.Error("Expected embedded menu to remain open after Close")
	}
	if m.CurrentIndex() != -1 {
		t.Error("Expected Close to clear the embedded menu's selection")
	}
}

func TestMenuView_RerendersOnCollectionUpdate(t *testing.T) {
	resetUIState(t)
	coll := menu.NewCollection(plainItem(t, "A"))
	m := NewMenuView(MenuViewOptions{Items: coll, Logger: quietLogger()})

	if m.InteractiveLen() != 1 {
		t.Fatalf("Expected 1 item, got %d", m.InteractiveLen())
	}

	coll.Add(plainItem(t, "B"))
	if m.InteractiveLen() != 2 {
		t.Errorf("Expected re-render after add, got %d items", m.InteractiveLen())
	}

	coll.Reset([]*menu.Item{plainItem(t, "C")})
	if m.InteractiveLen() != 1 {
		t.Errorf("Expected re-render after reset, got %d items", m.InteractiveLen())
	}
	if got := m.interactive[0].item.Label(); got != "C" {
		t.Errorf("Expected item C after reset, got %q", got)
	}
}

func TestMenuView_CheckedChangeUpdatesInPlace(t *testing.T) {
	resetUIState(t)
	cb := checkboxItem(t, "Ruler", false)
	m := newTestMenu(t, cb)

	row := m.interactive[0].el
	if got := attr(t, row, "aria-checked"); got != "false" {
		t.Fatalf("Expected aria-checked=false, got %q", got)
	}

	cb.SetChecked(true)

	if m.interactive[0].el != row {
		t.Fatal("Expected checked change not to re-render the row")
	}
	if got := attr(t, row, "aria-checked"); got != "true" {
		t.Errorf("Expected aria-checked=true, got %q", got)
	}
	if got := row.Children()[0].Text(); got != checkGlyph {
		t.Errorf("Expected check glyph in the icon cell, got %q", got)
	}
}

func TestMenuView_RadioRolesAndState(t *testing.T) {
	resetUIState(t)
	a := menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeRadio, Label: "Left"})
	b := menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeRadio, Label: "Right"})
	menu.NewRadioGroup(a, b)
	m := newTestMenu(t, a, b)

	if got := attr(t, m.interactive[0].el, "role"); got != "menuitemradio" {
		t.Errorf("Expected role=menuitemradio, got %q", got)
	}

	a.SetChecked(true)
	b.SetChecked(true)

	if got := attr(t, m.interactive[0].el, "aria-checked"); got != "false" {
		t.Errorf("Expected silently unchecked radio to update its view, got aria-checked=%q", got)
	}
	if got := attr(t, m.interactive[1].el, "aria-checked"); got != "true" {
		t.Errorf("Expected checked radio aria-checked=true, got %q", got)
	}
}

func TestMenuView_SkipsNilItems(t *testing.T) {
	resetUIState(t)
	coll := menu.NewCollection()
	m := NewMenuView(MenuViewOptions{Items: coll, Logger: quietLogger()})

	coll.Reset([]*menu.Item{nil, plainItem(t, "A")})
	if m.InteractiveLen() != 1 {
		t.Errorf("Expected nil entry to be skipped, got %d items", m.InteractiveLen())
	}
}

func TestMenuView_CustomChildElement(t *testing.T) {
	resetUIState(t)
	custom := element.New(element.KindBox)
	custom.AddClass("custom-row")
	it := menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeItem,
		Label:   "Custom",
		ChildEl: custom,
	})
	m := newTestMenu(t, it)

	if m.El().Children()[0] != custom {
		t.Error("Expected the custom element to be mounted as the row")
	}
	if m.InteractiveLen() != 1 {
		t.Errorf("Expected custom row to stay interactive, got %d", m.InteractiveLen())
	}
}

func TestMenuView_CustomChildTracksChecked(t *testing.T) {
	resetUIState(t)
	custom := element.New(element.KindBox)
	checked := false
	it := menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeCheckbox,
		Label:   "Word wrap",
		Checked: &checked,
		ChildEl: custom,
	})
	m := newTestMenu(t, it)

	if got := attr(t, custom, "aria-checked"); got != "false" {
		t.Fatalf("Expected aria-checked=false on the custom row, got %q", got)
	}

	it.SetChecked(true)
	if got := attr(t, custom, "aria-checked"); got != "true" {
		t.Errorf("Expected the custom row to track checked state, got %q", got)
	}

	// Replacing the collection detaches the tracker with the row.
	m.Items().Reset(nil)
	it.SetChecked(false)
	if got := attr(t, custom, "aria-checked"); got != "true" {
		t.Errorf("Expected a torn-down row to stop tracking, got %q", got)
	}
}

func TestMenuView_AriaLabelling(t *testing.T) {
	resetUIState(t)
	m := NewMenuView(MenuViewOptions{
		Items:     menu.NewCollection(plainItem(t, "A")),
		AriaLabel: "File",
		Logger:    quietLogger(),
	})

	if got := attr(t, m.El(), "role"); got != "menu" {
		t.Errorf("Expected role=menu, got %q", got)
	}
	if got := attr(t, m.El(), "aria-label"); got != "File" {
		t.Errorf("Expected aria-label=File, got %q", got)
	}
}

func TestMenuView_Teardown(t *testing.T) {
	resetUIState(t)
	coll := menu.NewCollection(plainItem(t, "A"))
	m := NewMenuView(MenuViewOptions{Items: coll, Logger: quietLogger()})

	m.Open(OpenOptions{Sticky: true})
	m.Teardown()

	if CurrentOpenMenu() != nil {
		t.Error("Expected teardown to release the open slot")
	}

	before := m.InteractiveLen()
	coll.Add(plainItem(t, "B"))
	if m.InteractiveLen() != before {
		t.Error("Expected teardown to stop collection re-renders")
	}
}

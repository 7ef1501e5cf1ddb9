package ui

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/menu"
	"github.com/johnconnor-sec/menukit-go/internal/output"
)

var handleSeq atomic.Int64

// menuHandleView is the shared core of the handle composites: a controller
// element paired with the menu it opens, mounted under one root.
type menuHandleView struct {
	root       *element.Element
	controller *element.Element
	menu       *MenuView
}

func newMenuHandleView(controller *element.Element, opts MenuViewOptions) *menuHandleView {
	opts.ControllerEl = controller
	m := NewMenuView(opts)

	root := element.New(element.KindBox)
	root.AddClass("menu-handle")
	root.ReplaceChildren(controller, m.El())

	return &menuHandleView{root: root, controller: controller, menu: m}
}

// El returns the composite's root element.
func (h *menuHandleView) El() *element.Element {
	return h.root
}

// Menu returns the owned menu view.
func (h *menuHandleView) Menu() *MenuView {
	return h.menu
}

// HandleControllerClick toggles the menu. Click-opens are sticky.
func (h *menuHandleView) HandleControllerClick() {
	h.menu.Toggle(OpenOptions{Sticky: true}, CloseOptions{})
}

// HandleControllerMouseOver opens the menu on hover, non-sticky so it closes
// again when the pointer leaves.
func (h *menuHandleView) HandleControllerMouseOver() {
	h.menu.Open(OpenOptions{})
}

// HandleControllerMouseLeave forwards the leave to the menu, which closes
// after its delay unless sticky.
func (h *menuHandleView) HandleControllerMouseLeave() {
	h.menu.HandleMouseLeave()
}

// HandleKey routes a key event. When the menu is open it gets the event;
// when closed, Down/Up/Enter/Space on the controller open it sticky with a
// selection at the appropriate end.
func (h *menuHandleView) HandleKey(ev *tcell.EventKey) bool {
	if h.menu.IsOpen() {
		return h.menu.HandleKey(ev)
	}
	switch ev.Key() {
	case tcell.KeyDown, tcell.KeyEnter:
		first := 0
		h.menu.Open(OpenOptions{Sticky: true, CurrentIndex: &first})
		return true
	case tcell.KeyUp:
		last := h.menu.InteractiveLen() - 1
		h.menu.Open(OpenOptions{Sticky: true, CurrentIndex: &last})
		return true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			first := 0
			h.menu.Open(OpenOptions{Sticky: true, CurrentIndex: &first})
			return true
		}
	}
	return false
}

// Teardown releases the owned menu.
func (h *menuHandleView) Teardown() {
	h.menu.Teardown()
}

// MenuButtonViewOptions configures a MenuButtonView.
type MenuButtonViewOptions struct {
	Label    string
	IconName string
	Items    *menu.Collection

	CloseDelay       time.Duration
	TypeaheadTimeout time.Duration

	// Dispatch forwards to MenuViewOptions.Dispatch.
	Dispatch func(func())

	Logger *output.Logger
}

// MenuButtonView is a button that opens a popup menu.
type MenuButtonView struct {
	*menuHandleView
	button *ButtonView
}

// NewMenuButtonView wires a ButtonView controller to a MenuView.
func NewMenuButtonView(opts MenuButtonViewOptions) *MenuButtonView {
	button := NewButtonView(ButtonViewOptions{
		Label:    opts.Label,
		IconName: opts.IconName,
		Logger:   opts.Logger,
	})
	handle := newMenuHandleView(button.El(), MenuViewOptions{
		Items:            opts.Items,
		AriaLabel:        opts.Label,
		CloseDelay:       opts.CloseDelay,
		TypeaheadTimeout: opts.TypeaheadTimeout,
		Dispatch:         opts.Dispatch,
		Logger:           opts.Logger,
	})
	return &MenuButtonView{menuHandleView: handle, button: button}
}

// Button returns the controller button.
func (v *MenuButtonView) Button() *ButtonView {
	return v.button
}

// MenuLabelViewOptions configures a MenuLabelView.
type MenuLabelViewOptions struct {
	Label string
	Items *menu.Collection

	Logger *output.Logger
}

// MenuLabelView is a static label above a permanently visible menu; the menu
// is labelled by the label element rather than an aria-label.
type MenuLabelView struct {
	*menuHandleView
	labelEl *element.Element
}

// NewMenuLabelView wires a label element to an embedded MenuView.
func NewMenuLabelView(opts MenuLabelViewOptions) *MenuLabelView {
	labelID := fmt.Sprintf("menukit-handle-label-%d", handleSeq.Add(1))

	label := element.New(element.KindLabel)
	label.AddClass("menu-handle-label")
	label.SetAttribute("id", labelID)
	label.SetText(opts.Label)

	handle := newMenuHandleView(label, MenuViewOptions{
		Items:          opts.Items,
		Embedded:       true,
		AriaLabelledBy: labelID,
		Logger:         opts.Logger,
	})
	return &MenuLabelView{menuHandleView: handle, labelEl: label}
}

// LabelEl returns the label element.
func (v *MenuLabelView) LabelEl() *element.Element {
	return v.labelEl
}

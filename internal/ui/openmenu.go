package ui

import (
	"sync"

	"github.com/johnconnor-sec/menukit-go/internal/element"
)

// The toolkit allows at most one popped-open menu at a time, tracked in a
// single authoritative slot. Only the open/close transition logic writes it.
// Embedded menus never enter the slot.
var (
	openMenuMu       sync.Mutex
	openMenu         *MenuView
	outsideClickMenu *MenuView
)

// CurrentOpenMenu returns the menu currently holding the open slot, or nil.
func CurrentOpenMenu() *MenuView {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	return openMenu
}

func setOpenMenu(m *MenuView) {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	openMenu = m
}

// clearOpenMenu empties the slot, but only if m still holds it; a rival that
// took the slot over is left alone.
func clearOpenMenu(m *MenuView) {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	if openMenu == m {
		openMenu = nil
	}
}

func registerOutsideClick(m *MenuView) {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	outsideClickMenu = m
}

func unregisterOutsideClick(m *MenuView) {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	if outsideClickMenu == m {
		outsideClickMenu = nil
	}
}

// DispatchDocumentClick routes a document-level click. A click landing
// outside both the open menu and its controller closes the menu; the listener
// is one-shot because closing unregisters it.
func DispatchDocumentClick(target *element.Element) {
	openMenuMu.Lock()
	m := outsideClickMenu
	openMenuMu.Unlock()

	if m == nil {
		return
	}
	if target != nil {
		if m.el.Contains(target) {
			return
		}
		if m.controller != nil && m.controller.Contains(target) {
			return
		}
	}
	m.Close(CloseOptions{})
}

// ResetOpenMenu clears the open-menu slot and the outside-click listener
// without running close transitions. Intended for tests.
func ResetOpenMenu() {
	openMenuMu.Lock()
	defer openMenuMu.Unlock()
	openMenu = nil
	outsideClickMenu = nil
}

package ui

import (
	"sync"

	"github.com/johnconnor-sec/menukit-go/internal/element"
)

// Focus is process-wide, mirroring a document's single focused element. Views
// move it when selection changes and read it to decide event routing.
var (
	focusMu   sync.Mutex
	focusedEl *element.Element
)

// SetFocus moves focus to the given element. Passing nil clears focus.
func SetFocus(el *element.Element) {
	focusMu.Lock()
	defer focusMu.Unlock()
	focusedEl = el
}

// FocusedElement returns the element holding focus, or nil.
func FocusedElement() *element.Element {
	focusMu.Lock()
	defer focusMu.Unlock()
	return focusedEl
}

// ResetFocus clears focus state. Intended for tests.
func ResetFocus() {
	SetFocus(nil)
}

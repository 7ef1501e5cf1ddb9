// Package shortcut provides a keyboard-shortcut registration table. Menus and
// buttons register key chords with callbacks; the host event loop feeds key
// events through Handle.
package shortcut

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/errors"
)

// Registry maps canonical key chords to callbacks.
type Registry struct {
	mu       sync.Mutex
	bindings map[string]func()
}

// NewRegistry creates an empty shortcut registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]func())}
}

// Add registers a callback for a key chord such as "Ctrl+S" or "F2". The keys
// value and the callback are both required; registering an existing chord
// replaces its callback.
func (r *Registry) Add(keys string, fn func()) error {
	if strings.TrimSpace(keys) == "" {
		return errors.OptionMissingError("Shortcut", "keys")
	}
	if fn == nil {
		return errors.OptionMissingError("Shortcut", "callback")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[keys] = fn
	return nil
}

// Remove unregisters a key chord. Unknown chords are ignored.
func (r *Registry) Remove(keys string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, keys)
}

// Handle dispatches a key event to the matching callback, if any, and reports
// whether the event was consumed.
func (r *Registry) Handle(ev *tcell.EventKey) bool {
	chord := FormatKey(ev)

	r.mu.Lock()
	fn := r.bindings[chord]
	r.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Len returns the number of registered chords.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings)
}

// FormatKey renders a key event as a canonical chord string: modifiers in
// Ctrl, Alt, Meta order, then the key name or rune, joined with '+'.
func FormatKey(ev *tcell.EventKey) string {
	var parts []string

	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if mods&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if mods&tcell.ModMeta != 0 {
		parts = append(parts, "Meta")
	}

	switch {
	case ev.Key() == tcell.KeyRune:
		parts = append(parts, string(ev.Rune()))
	case isCtrlLetter(ev.Key()):
		// Terminals deliver Ctrl+letter as a control key; canonicalize to
		// the same chord a KeyRune event with ModCtrl would produce.
		if mods&tcell.ModCtrl == 0 {
			parts = append([]string{"Ctrl"}, parts...)
		}
		parts = append(parts, string(rune('a'+ev.Key()-tcell.KeyCtrlA)))
	default:
		if name, ok := tcell.KeyNames[ev.Key()]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("Key(%d)", int(ev.Key())))
		}
	}

	return strings.Join(parts, "+")
}

// isCtrlLetter reports whether k is a Ctrl+letter control key. Tab, Enter and
// Backspace share code points with Ctrl-I/M/H and keep their own names.
func isCtrlLetter(k tcell.Key) bool {
	switch k {
	case tcell.KeyTab, tcell.KeyEnter, tcell.KeyBackspace:
		return false
	}
	return k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ
}

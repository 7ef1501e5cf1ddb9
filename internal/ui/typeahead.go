package ui

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/event"
)

// TypeaheadBuffer accumulates recently typed characters and times them out.
// Menus feed it printable keystrokes and query it to jump to the first item
// whose label starts with the buffered text.
type TypeaheadBuffer struct {
	mu      sync.Mutex
	events  event.Emitter
	buf     []rune
	last    time.Time
	timeout time.Duration
	now     func() time.Time
	timer   *time.Timer
}

// ItemRange describes the search space for a typeahead query. GetNextItem
// advances the index; iteration stops after LastItem is examined.
type ItemRange struct {
	FirstItem   int
	LastItem    int
	GetItemText func(int) string
	GetNextItem func(int) int
}

// NewTypeaheadBuffer creates a buffer that clears itself when keystrokes are
// further apart than timeout.
func NewTypeaheadBuffer(timeout time.Duration) *TypeaheadBuffer {
	return &TypeaheadBuffer{
		timeout: timeout,
		now:     time.Now,
	}
}

// HandleKeyDown feeds a key event into the buffer and reports whether it was
// consumed. Only printable runes are consumed.
func (t *TypeaheadBuffer) HandleKeyDown(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	r := ev.Rune()
	if !unicode.IsPrint(r) {
		return false
	}

	t.mu.Lock()
	now := t.now()
	if len(t.buf) > 0 && now.Sub(t.last) > t.timeout {
		t.buf = t.buf[:0]
	}
	t.buf = append(t.buf, r)
	t.last = now

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.timeout, t.Clear)
	value := string(t.buf)
	t.mu.Unlock()

	t.events.Emit("bufferChanged", value)
	return true
}

// Value returns the current buffer text.
func (t *TypeaheadBuffer) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

// Clear empties the buffer and stops the pending timeout.
func (t *TypeaheadBuffer) Clear() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if len(t.buf) == 0 {
		t.mu.Unlock()
		return
	}
	t.buf = nil
	t.mu.Unlock()

	t.events.Emit("bufferChanged", "")
}

// On subscribes to buffer notifications ("bufferChanged" with the current
// text as payload).
func (t *TypeaheadBuffer) On(name string, fn event.Handler) *event.Subscription {
	return t.events.On(name, fn)
}

// FindItemForBuffer searches the range for the first item whose text starts
// with the buffer, case-insensitively. Returns the index and whether a match
// was found.
func (t *TypeaheadBuffer) FindItemForBuffer(r ItemRange) (int, bool) {
	query := strings.ToLower(t.Value())
	if query == "" {
		return 0, false
	}

	i := r.FirstItem
	for i >= 0 {
		if strings.HasPrefix(strings.ToLower(r.GetItemText(i)), query) {
			return i, true
		}
		if i == r.LastItem {
			break
		}
		i = r.GetNextItem(i)
	}
	return 0, false
}

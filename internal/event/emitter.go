// Package event provides a small synchronous observer mechanism with explicit
// subscription handles. Delivery is ordered by subscription time and happens
// entirely within the Emit call.
package event

import "sync"

// Event carries a notification name and an arbitrary payload.
type Event struct {
	Name string
	Data any
}

// Handler receives an emitted event.
type Handler func(Event)

// Subscription is the handle returned by On. Cancel detaches the handler;
// cancelling twice is harmless.
type Subscription struct {
	emitter *Emitter
	name    string
	id      int
}

// Cancel removes the subscription from its emitter.
func (s *Subscription) Cancel() {
	if s == nil || s.emitter == nil {
		return
	}
	s.emitter.off(s)
	s.emitter = nil
}

type handlerEntry struct {
	id int
	fn Handler
}

// Emitter dispatches named events to subscribed handlers. The zero value is
// ready to use.
type Emitter struct {
	mu     sync.Mutex
	subs   map[string][]handlerEntry
	nextID int
}

// On subscribes fn to events with the given name.
func (e *Emitter) On(name string, fn Handler) *Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.subs == nil {
		e.subs = make(map[string][]handlerEntry)
	}
	e.nextID++
	e.subs[name] = append(e.subs[name], handlerEntry{id: e.nextID, fn: fn})

	return &Subscription{emitter: e, name: name, id: e.nextID}
}

// Emit delivers the event synchronously to every handler subscribed to name,
// in subscription order. Handlers registered or cancelled during delivery take
// effect from the next Emit.
func (e *Emitter) Emit(name string, data any) {
	e.mu.Lock()
	entries := e.subs[name]
	snapshot := make([]handlerEntry, len(entries))
	copy(snapshot, entries)
	e.mu.Unlock()

	ev := Event{Name: name, Data: data}
	for _, entry := range snapshot {
		entry.fn(ev)
	}
}

// HasListeners reports whether any handler is subscribed to name.
func (e *Emitter) HasListeners(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs[name]) > 0
}

func (e *Emitter) off(s *Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.subs[s.name]
	for i, entry := range entries {
		if entry.id == s.id {
			e.subs[s.name] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

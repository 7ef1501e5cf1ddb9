// Package element provides the lightweight node tree the toolkit renders
// against. An Element carries a structural kind, a flat attribute set (role,
// aria-*, data-*, state classes), optional text, and ordered children.
//
// Children declared during component construction are one-shot: once a
// component freezes its element after the first render, AppendChild fails.
// The render path uses ReplaceChildren, which stays available so views can
// rebuild their managed subtree.
package element

import (
	"sort"
	"strings"

	"github.com/johnconnor-sec/menukit-go/internal/errors"
)

// Structural kinds. The kind decides how the renderer paints a node and which
// properties are legal on it (links carry targets, buttons do not).
const (
	KindBox      = "box"
	KindButton   = "button"
	KindLink     = "link"
	KindList     = "list"
	KindListItem = "listitem"
	KindRule     = "rule"
	KindHeader   = "header"
	KindLabel    = "label"
)

// Element is a single node in the render tree.
type Element struct {
	kind     string
	attrs    map[string]string
	text     string
	children []*Element
	parent   *Element
	frozen   bool
}

// New creates an element of the given structural kind.
func New(kind string) *Element {
	return &Element{
		kind:  kind,
		attrs: make(map[string]string),
	}
}

// Kind returns the structural kind the element was created with.
func (e *Element) Kind() string {
	return e.kind
}

// SetAttribute sets a named attribute, replacing any previous value.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// Attribute returns the value of a named attribute and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute unsets a named attribute.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// AttributeNames returns the set attribute names in sorted order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddClass adds a token to the class attribute if not already present.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	existing := e.attrs["class"]
	if existing == "" {
		e.attrs["class"] = class
		return
	}
	e.attrs["class"] = existing + " " + class
}

// RemoveClass removes a token from the class attribute.
func (e *Element) RemoveClass(class string) {
	tokens := strings.Fields(e.attrs["class"])
	kept := tokens[:0]
	for _, tok := range tokens {
		if tok != class {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 {
		delete(e.attrs, "class")
		return
	}
	e.attrs["class"] = strings.Join(kept, " ")
}

// HasClass reports whether the class attribute contains the token.
func (e *Element) HasClass(class string) bool {
	for _, tok := range strings.Fields(e.attrs["class"]) {
		if tok == class {
			return true
		}
	}
	return false
}

// SetText replaces the element's text content.
func (e *Element) SetText(text string) {
	e.text = text
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text
}

// AppendChild declares a new child. It fails once the element is frozen;
// declaring children is a construction-time operation.
func (e *Element) AppendChild(child *Element) error {
	if e.frozen {
		return errors.RenderFrozenError("element")
	}
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
	return nil
}

// ReplaceChildren swaps the full child list for the given one. This is the
// imperative mount operation the render path uses, so it is not subject to
// the freeze guard.
func (e *Element) ReplaceChildren(children ...*Element) {
	for _, old := range e.children {
		old.parent = nil
	}
	e.children = make([]*Element, 0, len(children))
	for _, child := range children {
		child.detach()
		child.parent = e
		e.children = append(e.children, child)
	}
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Parent returns the element's parent, or nil at the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Closest walks from e towards the root and returns the first element,
// including e itself, for which match returns true.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for n := e; n != nil; n = n.parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// Freeze marks the element's declared children as final. Later AppendChild
// calls fail with a render-frozen error.
func (e *Element) Freeze() {
	e.frozen = true
}

// Frozen reports whether the element has been frozen.
func (e *Element) Frozen() bool {
	return e.frozen
}

func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, sib := range siblings {
		if sib == e {
			e.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

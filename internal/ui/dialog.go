package ui

import (
	"fmt"
	"sync/atomic"

	"github.com/johnconnor-sec/menukit-go/internal/element"
)

var dialogSeq atomic.Int64

// DialogViewOptions configures a DialogView.
type DialogViewOptions struct {
	Title string

	// Alert marks the dialog as an alert dialog (role "alertdialog").
	Alert bool
}

// DialogView is a presentational modal container. It owns no behavior beyond
// open/close state; hosts decide when to show it.
type DialogView struct {
	el      *element.Element
	titleEl *element.Element
	bodyEl  *element.Element
}

// NewDialogView builds the dialog element with its title and body regions.
func NewDialogView(opts DialogViewOptions) *DialogView {
	id := fmt.Sprintf("menukit-dialog-%d", dialogSeq.Add(1))

	el := element.New(element.KindBox)
	el.AddClass("dialog")
	if opts.Alert {
		el.SetAttribute("role", "alertdialog")
	} else {
		el.SetAttribute("role", "dialog")
	}
	el.SetAttribute("id", id)
	el.SetAttribute("aria-modal", "true")

	title := element.New(element.KindHeader)
	title.AddClass("dialog-title")
	title.SetAttribute("id", id+"-title")
	title.SetText(opts.Title)
	el.SetAttribute("aria-labelledby", id+"-title")

	body := element.New(element.KindBox)
	body.AddClass("dialog-body")

	// The title/body structure is final; content goes into the body.
	el.ReplaceChildren(title, body)
	el.Freeze()
	return &DialogView{el: el, titleEl: title, bodyEl: body}
}

// NewAlertView builds an alert dialog.
func NewAlertView(title string) *DialogView {
	return NewDialogView(DialogViewOptions{Title: title, Alert: true})
}

// El returns the dialog's root element.
func (d *DialogView) El() *element.Element {
	return d.el
}

// Body returns the content region for hosts to populate.
func (d *DialogView) Body() *element.Element {
	return d.bodyEl
}

// SetTitle updates the dialog title.
func (d *DialogView) SetTitle(title string) {
	d.titleEl.SetText(title)
}

// Open marks the dialog visible.
func (d *DialogView) Open() {
	d.el.AddClass("-is-open")
}

// Close marks the dialog hidden.
func (d *DialogView) Close() {
	d.el.RemoveClass("-is-open")
}

// IsOpen reports whether the dialog is visible.
func (d *DialogView) IsOpen() bool {
	return d.el.HasClass("-is-open")
}

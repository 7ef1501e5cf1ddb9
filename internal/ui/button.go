package ui

import (
	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/output"
)

// ButtonViewOptions configures a ButtonView.
type ButtonViewOptions struct {
	Label    string
	IconName string
	Disabled bool

	// URL turns the button into a link element with an href.
	URL string

	OnClick func()
	Logger  *output.Logger
}

// ButtonView is a plain labelled button (or link) element.
type ButtonView struct {
	el      *element.Element
	labelEl *element.Element
	onClick func()
	logger  *output.Logger
}

// NewButtonView builds the button element.
func NewButtonView(opts ButtonViewOptions) *ButtonView {
	logger := opts.Logger
	if logger == nil {
		logger = output.GetGlobalLogger()
	}

	kind := element.KindButton
	if opts.URL != "" {
		kind = element.KindLink
	}
	el := element.New(kind)
	el.AddClass("button")
	if opts.URL != "" {
		el.SetAttribute("href", opts.URL)
	}
	if opts.IconName != "" {
		el.SetAttribute("data-icon", opts.IconName)
	}
	if opts.Disabled {
		el.SetAttribute("aria-disabled", "true")
	}

	label := element.New(element.KindLabel)
	label.AddClass("button-label")
	label.SetText(opts.Label)
	el.ReplaceChildren(label)
	el.Freeze()

	return &ButtonView{el: el, labelEl: label, onClick: opts.OnClick, logger: logger}
}

// El returns the button's root element.
func (b *ButtonView) El() *element.Element {
	return b.el
}

// Label returns the current label text.
func (b *ButtonView) Label() string {
	return b.labelEl.Text()
}

// SetLabel updates the label text.
func (b *ButtonView) SetLabel(label string) {
	b.labelEl.SetText(label)
}

// Disabled reports whether the button is disabled.
func (b *ButtonView) Disabled() bool {
	v, _ := b.el.Attribute("aria-disabled")
	return v == "true"
}

// SetDisabled updates the disabled state.
func (b *ButtonView) SetDisabled(disabled bool) {
	if disabled {
		b.el.SetAttribute("aria-disabled", "true")
	} else {
		b.el.RemoveAttribute("aria-disabled")
	}
}

// SetLinkTarget assigns the link target. On a non-link button the assignment
// is logged and ignored.
func (b *ButtonView) SetLinkTarget(url string) {
	if b.el.Kind() != element.KindLink {
		b.logger.Warn("ignoring link target on non-link button", map[string]any{
			"url": url,
		})
		return
	}
	b.el.SetAttribute("href", url)
}

// HandleClick runs the click callback unless disabled.
func (b *ButtonView) HandleClick() {
	if b.Disabled() || b.onClick == nil {
		return
	}
	b.onClick()
}

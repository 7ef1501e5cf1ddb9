package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/errors"
	"github.com/johnconnor-sec/menukit-go/internal/style"
)

// InitScreen creates and initializes a tcell screen.
func InitScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.ScreenInitError(err)
	}
	if err := screen.Init(); err != nil {
		return nil, errors.ScreenInitError(err)
	}
	return screen, nil
}

// Renderer paints element trees onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  style.Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(screen tcell.Screen, theme style.Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// SetTheme swaps the theme for subsequent paints.
func (r *Renderer) SetTheme(theme style.Theme) {
	r.theme = theme
}

// PaintMenuBar draws a row of handle controllers left to right at the given
// row, returning the x offset after each controller for hit-testing.
func (r *Renderer) PaintMenuBar(y int, handles []*menuHandleView) []int {
	width, _ := r.screen.Size()
	r.fillRow(0, y, width, r.theme.Base)

	offsets := make([]int, 0, len(handles))
	x := 0
	for _, h := range handles {
		st := r.theme.Controller
		if h.menu.IsOpen() {
			st = r.theme.Open
		}
		label := " " + controllerLabel(h.controller) + " "
		r.drawText(x, y, width-x, label, st)
		x += runewidth.StringWidth(label)
		offsets = append(offsets, x)
	}
	return offsets
}

// PaintMenuBarButtons is PaintMenuBar for MenuButtonView slices.
func (r *Renderer) PaintMenuBarButtons(y int, buttons []*MenuButtonView) []int {
	handles := make([]*menuHandleView, len(buttons))
	for i, b := range buttons {
		handles[i] = b.menuHandleView
	}
	return r.PaintMenuBar(y, handles)
}

// PaintMenu draws an open menu as a bordered box anchored at (x, y).
func (r *Renderer) PaintMenu(m *MenuView, x, y int) {
	if !m.IsOpen() {
		return
	}

	width := r.menuWidth(m)
	row := y
	for _, child := range m.el.Children() {
		r.paintMenuRow(child, x, row, width)
		row++
	}
}

// MenuWidth returns the column width PaintMenu will use for the menu.
func (r *Renderer) MenuWidth(m *MenuView) int {
	return r.menuWidth(m)
}

// PaintStatus draws a single status line across the given row.
func (r *Renderer) PaintStatus(y, width int, text string) {
	r.fillRow(0, y, width, r.theme.Base)
	r.drawText(1, y, width-2, text, r.theme.Base)
}

// menuWidth measures the widest row: icon cell + label + shortcut gap.
func (r *Renderer) menuWidth(m *MenuView) int {
	width := 8
	for _, child := range m.el.Children() {
		w := 2 + runewidth.StringWidth(rowLabel(child))
		if sc := rowShortcut(child); sc != "" {
			w += 2 + runewidth.StringWidth(sc)
		}
		if w+2 > width {
			width = w + 2
		}
	}
	maxW, _ := r.screen.Size()
	if width > maxW {
		width = maxW
	}
	return width
}

func (r *Renderer) paintMenuRow(el *element.Element, x, y, width int) {
	role, _ := el.Attribute("role")

	switch role {
	case "separator":
		for i := 0; i < width; i++ {
			r.screen.SetContent(x+i, y, tcell.RuneHLine, nil, r.theme.Separator)
		}
		return
	case "presentation":
		r.fillRow(x, y, width, r.theme.Header)
		r.drawText(x+1, y, width-1, rowText(el), r.theme.Header)
		return
	}

	st := r.theme.Item
	if v, _ := el.Attribute("aria-disabled"); v == "true" {
		st = r.theme.Disabled
	}
	if v, _ := el.Attribute("aria-selected"); v == "true" {
		st = r.theme.Selected
	}
	r.fillRow(x, y, width, st)

	icon := " "
	for _, c := range el.Children() {
		if c.HasClass("menu-item-icon") && c.Text() != "" {
			icon = c.Text()
		}
	}
	r.drawText(x+1, y, 2, icon, st)

	label := rowLabel(el)
	shortcut := rowShortcut(el)
	labelSpace := width - 4
	if shortcut != "" {
		labelSpace -= runewidth.StringWidth(shortcut) + 2
	}
	r.drawText(x+3, y, labelSpace, label, st)
	if shortcut != "" {
		scStyle := r.theme.Shortcut
		if v, _ := el.Attribute("aria-selected"); v == "true" {
			scStyle = st
		}
		scX := x + width - runewidth.StringWidth(shortcut) - 1
		r.drawText(scX, y, width, shortcut, scStyle)
	}
}

// drawText writes text at (x, y), truncated to max columns with an ellipsis.
func (r *Renderer) drawText(x, y, max int, text string, st tcell.Style) {
	if max <= 0 {
		return
	}
	text = runewidth.Truncate(text, max, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, st)
		col += runewidth.RuneWidth(ch)
	}
}

func (r *Renderer) fillRow(x, y, width int, st tcell.Style) {
	for i := 0; i < width; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

func controllerLabel(el *element.Element) string {
	if el.Kind() == element.KindLabel {
		return el.Text()
	}
	for _, c := range el.Children() {
		if c.HasClass("button-label") {
			return c.Text()
		}
	}
	return el.Text()
}

func rowLabel(el *element.Element) string {
	for _, c := range el.Children() {
		if c.HasClass("menu-item-label") {
			return c.Text()
		}
	}
	return el.Text()
}

func rowShortcut(el *element.Element) string {
	for _, c := range el.Children() {
		if c.HasClass("menu-item-shortcut") {
			return c.Text()
		}
	}
	return ""
}

func rowText(el *element.Element) string {
	return el.Text()
}

// Package style defines the toolkit's color themes and loads behaviour
// configuration from YAML.
package style

import "github.com/gdamore/tcell/v2"

// Theme holds the tcell styles the renderer applies per element state.
type Theme struct {
	Base       tcell.Style
	Item       tcell.Style
	Selected   tcell.Style
	Disabled   tcell.Style
	Separator  tcell.Style
	Header     tcell.Style
	Shortcut   tcell.Style
	Controller tcell.Style
	Open       tcell.Style
}

// Default uses the terminal's default palette.
var Default = Theme{
	Base:       tcell.StyleDefault,
	Item:       tcell.StyleDefault,
	Selected:   tcell.StyleDefault.Reverse(true),
	Disabled:   tcell.StyleDefault.Dim(true),
	Separator:  tcell.StyleDefault.Dim(true),
	Header:     tcell.StyleDefault.Bold(true),
	Shortcut:   tcell.StyleDefault.Dim(true),
	Controller: tcell.StyleDefault.Bold(true),
	Open:       tcell.StyleDefault.Bold(true).Reverse(true),
}

// Dark is tuned for dark terminal backgrounds.
var Dark = Theme{
	Base:       tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	Item:       tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	Selected:   tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite).Bold(true),
	Disabled:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	Separator:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	Header:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorAqua).Bold(true),
	Shortcut:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	Controller: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true),
	Open:       tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite).Bold(true),
}

// HighContrast maximizes figure/ground separation for accessibility.
var HighContrast = Theme{
	Base:       tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true),
	Item:       tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true),
	Selected:   tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true),
	Disabled:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver),
	Separator:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
	Header:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow).Bold(true),
	Shortcut:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow),
	Controller: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true),
	Open:       tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true),
}

// Named returns a built-in theme by name.
func Named(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return Default, true
	case "dark":
		return Dark, true
	case "high-contrast":
		return HighContrast, true
	default:
		return Theme{}, false
	}
}

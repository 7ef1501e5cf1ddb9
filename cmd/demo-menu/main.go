// Demo program showcasing the menu toolkit: a menu bar with popup menus,
// checkbox and radio items, typeahead, and keyboard shortcuts, rendered on a
// live tcell screen.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/johnconnor-sec/menukit-go/internal/element"
	"github.com/johnconnor-sec/menukit-go/internal/menu"
	"github.com/johnconnor-sec/menukit-go/internal/output"
	"github.com/johnconnor-sec/menukit-go/internal/shortcut"
	"github.com/johnconnor-sec/menukit-go/internal/style"
	"github.com/johnconnor-sec/menukit-go/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo-menu: %v\n", err)
		os.Exit(1)
	}
}

// dispatchEvent carries a deferred closure through the tcell event queue so
// menu timers run their work on the main loop.
type dispatchEvent struct {
	tcell.EventTime
	fn func()
}

type app struct {
	screen   tcell.Screen
	renderer *ui.Renderer
	logger   *output.Logger

	buttons   []*ui.MenuButtonView
	offsets   []int
	shortcuts *shortcut.Registry

	status string
	quit   bool
}

func run() error {
	logFile := flag.String("log", "", "write a debug log to this file")
	configPath := flag.String("config", "", "style configuration file (YAML)")
	themeName := flag.String("theme", "", "theme name: default, dark, high-contrast")
	flag.Parse()

	logger := output.NewLogger().SetLevel(output.LogLevelWarn)
	if *logFile != "" {
		fileLogger, err := output.CreateFileLogger(*logFile, output.LogLevelDebug, output.LogFormatText)
		if err != nil {
			return err
		}
		logger = fileLogger
	}
	output.SetGlobalLogger(logger)

	cfg := style.DefaultConfig()
	if *configPath != "" {
		loaded, err := style.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	theme := cfg.ResolveTheme()
	if *themeName != "" {
		named, ok := style.Named(*themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q", *themeName)
		}
		theme = named
	}

	screen, err := ui.InitScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	a := &app{
		screen:    screen,
		renderer:  ui.NewRenderer(screen, theme),
		logger:    logger,
		shortcuts: shortcut.NewRegistry(),
		status:    "F10 or click to open a menu; q quits when no menu is open",
	}
	a.buildMenus(cfg)

	a.loop()
	return nil
}

func (a *app) buildMenus(cfg style.Config) {
	fileItems := menu.NewCollection(
		a.actionItem("New", "Ctrl+N", "Ctrl+n"),
		a.actionItem("Open…", "Ctrl+O", "Ctrl+o"),
		a.actionItem("Save", "Ctrl+S", "Ctrl+s"),
		menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeSeparator}),
		menu.MustItem(menu.ItemOptions{
			Type:    menu.ItemTypeItem,
			Label:   "Quit",
			OnClick: func(*menu.Item) { a.quit = true },
		}),
	)

	wordWrap := menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeCheckbox,
		Label:   "Word wrap",
		OnClick: a.checkedStatus,
	})
	ruler := menu.MustItem(menu.ItemOptions{
		Type:    menu.ItemTypeCheckbox,
		Label:   "Ruler",
		OnClick: a.checkedStatus,
	})

	group := menu.NewRadioGroup()
	checked := true
	zoomItems := []*menu.Item{
		menu.MustItem(menu.ItemOptions{
			Type: menu.ItemTypeRadio, Label: "Zoom 100%",
			Checked: &checked, RadioGroup: group, OnClick: a.checkedStatus,
		}),
		menu.MustItem(menu.ItemOptions{
			Type: menu.ItemTypeRadio, Label: "Zoom 150%",
			RadioGroup: group, OnClick: a.checkedStatus,
		}),
		menu.MustItem(menu.ItemOptions{
			Type: menu.ItemTypeRadio, Label: "Zoom 200%",
			RadioGroup: group, OnClick: a.checkedStatus,
		}),
	}

	viewItems := menu.NewCollection()
	viewItems.Add(menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeHeader, Label: "Editor"}))
	viewItems.Add(wordWrap)
	viewItems.Add(ruler)
	viewItems.Add(menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeSeparator}))
	viewItems.Add(menu.MustItem(menu.ItemOptions{Type: menu.ItemTypeHeader, Label: "Zoom"}))
	for _, it := range zoomItems {
		viewItems.Add(it)
	}

	for _, opts := range []ui.MenuButtonViewOptions{
		{Label: "File", Items: fileItems},
		{Label: "View", Items: viewItems},
	} {
		opts.CloseDelay = cfg.ResolveCloseDelay()
		opts.TypeaheadTimeout = cfg.ResolveTypeaheadTimeout()
		opts.Dispatch = a.dispatch
		opts.Logger = a.logger
		a.buttons = append(a.buttons, ui.NewMenuButtonView(opts))
	}
}

// actionItem builds a plain item whose action just reports to the status
// line. The display string is what the menu shows; the chord is the
// canonical binding the registry matches against.
func (a *app) actionItem(label, display, chord string) *menu.Item {
	it := menu.MustItem(menu.ItemOptions{
		Type:             menu.ItemTypeItem,
		Label:            label,
		Shortcut:         display,
		ShortcutRegistry: a.shortcuts,
		OnClick: func(it *menu.Item) {
			a.status = fmt.Sprintf("%s activated", it.Label())
		},
	})
	if err := a.shortcuts.Add(chord, it.InvokeAction); err != nil {
		a.logger.WithError(err).Warn("shortcut not registered", map[string]any{"keys": chord})
	}
	return it
}

func (a *app) checkedStatus(it *menu.Item) {
	a.status = fmt.Sprintf("%s: checked=%t", it.Label(), it.Checked())
}

func (a *app) openButton() *ui.MenuButtonView {
	for _, b := range a.buttons {
		if b.Menu().IsOpen() {
			return b
		}
	}
	return nil
}

// dispatch posts deferred work onto the event queue. Dropped events are fine:
// a deferred close still takes effect the next time its menu is touched.
func (a *app) dispatch(fn func()) {
	ev := &dispatchEvent{fn: fn}
	ev.SetEventNow()
	if err := a.screen.PostEvent(ev); err != nil {
		a.logger.WithError(err).Debug("event queue full, dropping deferred work")
	}
}

func (a *app) loop() {
	for !a.quit {
		a.draw()
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		case *dispatchEvent:
			ev.fn()
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) {
	if open := a.openButton(); open != nil {
		if open.HandleKey(ev) {
			return
		}
	}
	if a.shortcuts.Handle(ev) {
		return
	}

	switch {
	case ev.Key() == tcell.KeyF10:
		a.buttons[0].HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		a.quit = true
	case ev.Key() == tcell.KeyCtrlC:
		a.quit = true
	}
}

func (a *app) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()

	if ev.Buttons()&tcell.Button1 != 0 {
		if y == 0 {
			if b := a.buttonAt(x); b != nil {
				b.HandleControllerClick()
				return
			}
		}
		if open := a.openButton(); open != nil {
			if row, ok := a.menuRowAt(open, x, y); ok {
				open.Menu().HandleClick(row)
				return
			}
		}
		ui.DispatchDocumentClick(nil)
		return
	}

	// Motion: hovering another controller while a menu is open moves the
	// open menu; hovering rows moves the selection; leaving schedules a
	// close for hover-opened menus.
	if y == 0 {
		if b := a.buttonAt(x); b != nil && a.openButton() != nil && !b.Menu().IsOpen() {
			b.HandleControllerMouseOver()
		}
		return
	}
	if open := a.openButton(); open != nil {
		if row, ok := a.menuRowAt(open, x, y); ok {
			open.Menu().HandleMouseOver(row)
		} else {
			open.Menu().HandleMouseLeave()
		}
	}
}

// menuRowAt maps screen coordinates to the rendered row element of the open
// menu. Menus are drawn directly under the bar starting at row 1.
func (a *app) menuRowAt(b *ui.MenuButtonView, x, y int) (*element.Element, bool) {
	m := b.Menu()
	rows := m.El().Children()
	anchor := a.menuAnchorX(b)
	width := a.renderer.MenuWidth(m)

	i := y - 1
	if i < 0 || i >= len(rows) || x < anchor || x >= anchor+width {
		return nil, false
	}
	return rows[i], true
}

func (a *app) buttonAt(x int) *ui.MenuButtonView {
	start := 0
	for i, end := range a.offsets {
		if x >= start && x < end {
			return a.buttons[i]
		}
		start = end
	}
	return nil
}

func (a *app) draw() {
	a.screen.Clear()
	a.offsets = a.renderer.PaintMenuBarButtons(0, a.buttons)

	if open := a.openButton(); open != nil {
		x := a.menuAnchorX(open)
		a.renderer.PaintMenu(open.Menu(), x, 1)
	}

	width, height := a.screen.Size()
	a.renderer.PaintStatus(height-1, width, a.status)
	a.screen.Show()
}

func (a *app) menuAnchorX(b *ui.MenuButtonView) int {
	start := 0
	for i, end := range a.offsets {
		if a.buttons[i] == b {
			return start
		}
		start = end
	}
	return 0
}

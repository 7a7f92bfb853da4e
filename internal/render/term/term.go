// Package term implements the render.Engine interface on a terminal using
// tcell. The scene is scaled down to character cells; the player is drawn
// as a block of full-block runes.
package term

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/game"
	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/render"
	"chosenoffset.com/runebound/internal/stats"
	"chosenoffset.com/runebound/internal/ui/hud"
	"chosenoffset.com/runebound/internal/ui/theme"
)

// Scene pixels per terminal cell. Cells are roughly twice as tall as wide.
const (
	CellWidth  = 10
	CellHeight = 20
)

const (
	sidebarCols = 8
	statsCols   = 12
	maxSlotPad  = 2
)

// Backend draws the scene into a tcell screen.
type Backend struct {
	screen  tcell.Screen
	palette theme.Palette
	cfg     *config.Config

	// Inner regions in cells.
	inventory geom.Rect
	canvas    geom.Rect
	stats     geom.Rect
	controls  geom.Point
}

var _ render.Engine = (*Backend)(nil)

// New initialises screen and lays the panels out on it. If screen is nil
// the real terminal is used.
func New(cfg *config.Config, palette theme.Palette, screen tcell.Screen) (*Backend, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise terminal: %w", err)
	}

	cols := ceilDiv(cfg.Scene.Width, CellWidth)
	rows := ceilDiv(cfg.Scene.Height, CellHeight)

	b := &Backend{screen: screen, palette: palette, cfg: cfg}
	// Each panel has a one-cell border and a one-cell gap to the next.
	b.inventory = geom.Rect{X: 1, Y: 1, W: sidebarCols, H: rows}
	b.canvas = geom.Rect{X: b.inventory.X + sidebarCols + 3, Y: 1, W: cols, H: rows}
	b.stats = geom.Rect{X: b.canvas.X + cols + 3, Y: 1, W: statsCols, H: rows}
	b.controls = geom.Point{X: b.canvas.X + cols/2, Y: rows + 3}

	screen.HideCursor()
	b.drawFrame()
	return b, nil
}

// Size returns the number of columns and rows the layout needs.
func (b *Backend) Size() geom.Size {
	return geom.Size{W: b.stats.X + b.stats.W + 1, H: b.controls.Y + 1}
}

// Close restores the terminal.
func (b *Backend) Close() {
	b.screen.Fini()
}

// DrawPlayer clears the canvas and fills the cells the player covers.
func (b *Backend) DrawPlayer(pos geom.Point) {
	b.clear(b.canvas)
	cells := PlayerCells(pos, b.cfg.Player.Size)
	st := b.style(b.palette.Player, b.palette.Panel)
	for y := cells.Y; y < cells.Y+cells.H; y++ {
		for x := cells.X; x < cells.X+cells.W; x++ {
			if x < 0 || y < 0 || x >= b.canvas.W || y >= b.canvas.H {
				continue
			}
			b.screen.SetContent(b.canvas.X+x, b.canvas.Y+y, '█', nil, st)
		}
	}
	b.screen.Show()
}

// DrawInventory clears the sidebar and draws one row per slot.
func (b *Backend) DrawInventory(slots []inventory.Slot, selected int) {
	b.clear(b.inventory)
	pad := 0
	if n := len(slots); n > 1 {
		pad = min(maxSlotPad, (b.inventory.H-n)/(n-1))
	}
	rects := hud.SlotRects(geom.Size{W: b.inventory.W, H: b.inventory.H}, len(slots), 1, pad)
	for i, r := range rects {
		label := "[" + hud.SlotLabel(i) + "]"
		st := b.style(b.palette.SlotNumber, b.palette.Panel)
		if i == selected {
			label = ">" + label + "<"
			st = b.style(b.palette.SlotSelected, b.palette.SlotFill).Bold(true)
		}
		b.putCentered(b.inventory.X+b.inventory.W/2, b.inventory.Y+r.Y, label, st)
	}
	b.screen.Show()
}

// DrawStats clears the stats panel and lists every stat.
func (b *Backend) DrawStats(s stats.Stats) {
	b.clear(b.stats)
	mid := b.stats.X + b.stats.W/2
	b.putCentered(mid, b.stats.Y, "Stats", b.style(b.palette.StatsTitle, b.palette.Panel).Bold(true))
	for i, e := range s.Entries() {
		y := b.stats.Y + 2 + 2*i
		if y >= b.stats.Y+b.stats.H {
			break
		}
		label := e.Name + ":"
		b.put(mid-utf8.RuneCountInString(label), y, label, b.style(b.palette.StatLabel, b.palette.Panel))
		b.put(mid+1, y, strconv.Itoa(e.Value), b.style(b.palette.StatValue, b.palette.Panel))
	}
	b.screen.Show()
}

// RunGame pumps terminal events into game and ticks it until ctx is
// cancelled or the user presses Esc or Ctrl-C. The terminal is restored
// before returning.
func (b *Backend) RunGame(ctx context.Context, g render.Game) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan input.Event, 64)
	go b.pump(ctx, cancel, events)

	held := NewHoldTracker(g, b.cfg.Loop.HoldDelay, b.cfg.Loop.HoldTimeout, nil)
	err := game.Run(ctx, held, events, game.NewTicker(b.cfg.Loop.Tick))
	b.Close()
	return err
}

// pump forwards key events until ctx is done or the screen is finalised.
func (b *Backend) pump(ctx context.Context, cancel context.CancelFunc, events chan<- input.Event) {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if IsQuit(ev) {
				cancel()
				return
			}
			name, ok := KeyName(ev)
			if !ok {
				continue
			}
			select {
			case events <- input.Event{Key: name, Down: true}:
			case <-ctx.Done():
				return
			}
		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

// KeyName maps a terminal key event to a game key name.
func KeyName(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyRune:
		k := input.Normalize(string(ev.Rune()))
		if input.Resolve(k, config.MaxSlots).Kind == input.ActionNone {
			return "", false
		}
		return k, true
	}
	return "", false
}

// IsQuit reports whether ev asks to leave the game.
func IsQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// PlayerCells converts the player's pixel square into the cells it covers,
// relative to the canvas origin.
func PlayerCells(pos geom.Point, size int) geom.Rect {
	x0, y0 := pos.X/CellWidth, pos.Y/CellHeight
	x1, y1 := (pos.X+size-1)/CellWidth, (pos.Y+size-1)/CellHeight
	return geom.Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

func (b *Backend) drawFrame() {
	bg := b.style(b.palette.Window, b.palette.Window)
	size := b.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			b.screen.SetContent(x, y, ' ', nil, bg)
		}
	}
	for _, r := range []geom.Rect{b.inventory, b.canvas, b.stats} {
		b.box(r)
		b.clear(r)
	}
	b.putCentered(b.controls.X, b.controls.Y, hud.ControlsText(b.cfg.Inventory.Slots), b.style(b.palette.ControlsText, b.palette.Panel))
	b.screen.Show()
}

// box draws a border one cell outside r.
func (b *Backend) box(r geom.Rect) {
	st := b.style(b.palette.Frame, b.palette.Panel)
	x0, y0, x1, y1 := r.X-1, r.Y-1, r.X+r.W, r.Y+r.H
	for x := x0 + 1; x < x1; x++ {
		b.screen.SetContent(x, y0, tcell.RuneHLine, nil, st)
		b.screen.SetContent(x, y1, tcell.RuneHLine, nil, st)
	}
	for y := y0 + 1; y < y1; y++ {
		b.screen.SetContent(x0, y, tcell.RuneVLine, nil, st)
		b.screen.SetContent(x1, y, tcell.RuneVLine, nil, st)
	}
	b.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, st)
	b.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, st)
	b.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, st)
	b.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, st)
}

func (b *Backend) clear(r geom.Rect) {
	st := b.style(b.palette.Panel, b.palette.Panel)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			b.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (b *Backend) put(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		b.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (b *Backend) putCentered(cx, y int, s string, st tcell.Style) {
	b.put(cx-utf8.RuneCountInString(s)/2, y, s, st)
}

func (b *Backend) style(fg, bg color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

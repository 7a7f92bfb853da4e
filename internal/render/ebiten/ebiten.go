package ebiten

import (
	"context"
	"errors"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/core/geom"
	"chosenoffset.com/runebound/internal/input"
	"chosenoffset.com/runebound/internal/inventory"
	"chosenoffset.com/runebound/internal/render"
	"chosenoffset.com/runebound/internal/stats"
	"chosenoffset.com/runebound/internal/ui/hud"
	"chosenoffset.com/runebound/internal/ui/theme"
)

// Backend draws the scene in an ebiten window. Each dynamic region has its
// own offscreen image that is only repainted when the game asks for it;
// Draw composites the images every frame.
type Backend struct {
	layout     hud.Layout
	palette    theme.Palette
	title      string
	tps        int
	playerSize int
	face       text.Face

	canvas    *ebiten.Image
	inventory *ebiten.Image
	stats     *ebiten.Image
	controls  *ebiten.Image
}

var _ render.Engine = (*Backend)(nil)

// New creates a backend sized from cfg.
func New(cfg *config.Config, palette theme.Palette) *Backend {
	l := hud.New(hud.ParamsFromConfig(cfg))
	canvas := l.Inner(l.Canvas)
	side := l.Inner(l.Inventory)
	ctrl := l.ControlsInner()

	return &Backend{
		layout:     l,
		palette:    palette,
		title:      cfg.Scene.Title,
		tps:        TPSFor(cfg.Loop.Tick),
		playerSize: cfg.Player.Size,
		face:       text.NewGoXFace(basicfont.Face7x13),
		canvas:     ebiten.NewImage(canvas.W, canvas.H),
		inventory:  ebiten.NewImage(side.W, side.H),
		stats:      ebiten.NewImage(side.W, side.H),
		controls:   ebiten.NewImage(ctrl.W, ctrl.H),
	}
}

// TPSFor converts a tick interval into ebiten ticks per second.
func TPSFor(tick time.Duration) int {
	if tick <= 0 {
		return ebiten.DefaultTPS
	}
	return max(1, int(time.Second/tick))
}

// DrawPlayer clears the canvas and draws the player square.
func (b *Backend) DrawPlayer(pos geom.Point) {
	b.canvas.Fill(b.palette.Panel)
	s := float32(b.playerSize)
	x, y := float32(pos.X), float32(pos.Y)
	vector.DrawFilledRect(b.canvas, x, y, s, s, b.palette.Player, false)
	vector.StrokeRect(b.canvas, x, y, s, s, 3, b.palette.PlayerOutline, false)
}

// DrawInventory clears the sidebar and draws every slot, highlighting the
// selected one.
func (b *Backend) DrawInventory(slots []inventory.Slot, selected int) {
	b.inventory.Fill(b.palette.Panel)
	for i, r := range b.layout.SlotRects() {
		border, width, number := b.palette.SlotBorder, float32(2), b.palette.SlotNumber
		if i == selected {
			border, width, number = b.palette.SlotSelected, 4, b.palette.SlotNumberSel
		}
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		vector.DrawFilledRect(b.inventory, x, y, w, h, b.palette.SlotFill, false)
		vector.StrokeRect(b.inventory, x, y, w, h, width, border, false)
		b.drawText(b.inventory, hud.SlotLabel(i), r.X+hud.SlotNumberDX, r.Y+hud.SlotNumberDY, number, text.AlignCenter)
		// Items are not drawn; every slot is empty.
	}
}

// DrawStats clears the stats sidebar and lists every stat.
func (b *Backend) DrawStats(s stats.Stats) {
	b.stats.Fill(b.palette.Panel)
	mid := b.layout.SidebarWidth / 2
	b.drawText(b.stats, "Stats", mid, hud.StatsTitleY, b.palette.StatsTitle, text.AlignCenter)
	for i, e := range s.Entries() {
		y := hud.StatLineY(i)
		b.drawText(b.stats, e.Name+":", mid, y, b.palette.StatLabel, text.AlignEnd)
		b.drawText(b.stats, strconv.Itoa(e.Value), mid+hud.StatsValueGap, y, b.palette.StatValue, text.AlignStart)
	}
}

func (b *Backend) drawControls() {
	b.controls.Fill(b.palette.Panel)
	w, h := b.controls.Bounds().Dx(), b.controls.Bounds().Dy()
	b.drawText(b.controls, ControlsLabel(b.layout.Slots, basicfont.Face7x13), w/2, h/2, b.palette.ControlsText, text.AlignCenter)
}

var arrowWords = strings.NewReplacer("↑", "Up", "↓", "Down")

// ControlsLabel returns the controls help line, with the arrows spelled out
// if face cannot draw them.
func ControlsLabel(slots int, face font.Face) string {
	s := hud.ControlsText(slots)
	for _, r := range "↑↓" {
		if _, ok := face.GlyphAdvance(r); !ok {
			return arrowWords.Replace(s)
		}
	}
	return s
}

// drawText draws str with its vertical centre at y and the given
// horizontal alignment at x.
func (b *Backend) drawText(dst *ebiten.Image, str string, x, y int, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, b.face, op)
}

// draw composites the panels onto screen.
func (b *Backend) draw(screen *ebiten.Image) {
	screen.Fill(b.palette.Window)
	b.drawPanel(screen, b.layout.Inventory, b.inventory)
	b.drawPanel(screen, b.layout.Canvas, b.canvas)
	b.drawPanel(screen, b.layout.Stats, b.stats)

	c := b.layout.Controls
	vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), b.palette.Frame, false)
	in := b.layout.ControlsInner()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(in.X), float64(in.Y))
	screen.DrawImage(b.controls, op)
}

func (b *Backend) drawPanel(screen *ebiten.Image, outer geom.Rect, img *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(outer.X), float32(outer.Y), float32(outer.W), float32(outer.H), b.palette.Frame, false)
	in := b.layout.Inner(outer)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(in.X), float64(in.Y))
	screen.DrawImage(img, op)
}

// RunGame opens the window and runs game at the configured tick rate until
// the window is closed or ctx is cancelled.
func (b *Backend) RunGame(ctx context.Context, game render.Game) error {
	ebiten.SetWindowSize(b.layout.Window.W, b.layout.Window.H)
	ebiten.SetWindowTitle(b.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(b.tps)

	err := ebiten.RunGame(&gameAdapter{ctx: ctx, backend: b, game: game})
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return err
}

// gameAdapter adapts a render.Game to the ebiten.Game interface. ebiten
// calls Update on a single goroutine at the configured TPS, so each Update
// is exactly one tick preceded by that frame's key events.
type gameAdapter struct {
	ctx     context.Context
	backend *Backend
	game    render.Game

	started bool
	focused bool
	keys    []ebiten.Key
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !a.started {
		a.backend.drawControls()
		a.game.Start()
		a.started = true
		a.focused = true
	}

	// Key-up events are lost while unfocused, so drop held movement keys.
	focused := ebiten.IsFocused()
	if a.focused && !focused {
		releaseHeld(a.game)
	}
	a.focused = focused

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, k := range a.keys {
		if name, ok := KeyName(k); ok {
			a.game.HandleEvent(input.Event{Key: name, Down: true})
		}
	}
	a.keys = inpututil.AppendJustReleasedKeys(a.keys[:0])
	for _, k := range a.keys {
		if name, ok := KeyName(k); ok {
			a.game.HandleEvent(input.Event{Key: name, Down: false})
		}
	}

	a.game.Tick()
	return nil
}

// releaseHeld drops g's held movement keys, with key-up events if g cannot
// release them all at once.
func releaseHeld(g render.Game) {
	if r, ok := g.(render.Releaser); ok {
		r.ReleaseAll()
		return
	}
	for _, k := range movementKeys {
		g.HandleEvent(input.Event{Key: k, Down: false})
	}
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.backend.draw(screen)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.backend.layout.Window.W, a.backend.layout.Window.H
}

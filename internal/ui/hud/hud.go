// Package hud computes where the scene's panels go: the inventory sidebar on
// the left, the canvas in the middle, the stats sidebar on the right and the
// controls box underneath. It does no drawing; both render backends place
// their output with it.
package hud

import (
	"fmt"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/core/geom"
)

// Gap between the canvas row and the controls box.
const controlsGap = 20

// controlsBorder is the outline width of the controls box.
const controlsBorder = 3

// Stats panel text placement, relative to the panel's inner origin.
const (
	StatsTitleY     = 16
	StatsFirstLineY = 40
	StatsLineHeight = 32
	StatsValueGap   = 10
)

// Slot number placement, relative to the slot's top-left corner.
const (
	SlotNumberDX = 13
	SlotNumberDY = 15
)

// Params are the dimensions the layout is derived from.
type Params struct {
	Scene            geom.Size
	SidebarWidth     int
	SidebarPad       int
	ControlBoxHeight int
	Outline          int
	Margin           int
	Slots            int
	SlotSize         int
	SlotPad          int
}

// ParamsFromConfig extracts layout parameters from cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Scene:            geom.Size{W: cfg.Scene.Width, H: cfg.Scene.Height},
		SidebarWidth:     cfg.Layout.SidebarWidth,
		SidebarPad:       cfg.Layout.SidebarPad,
		ControlBoxHeight: cfg.Layout.ControlBoxHeight,
		Outline:          cfg.Layout.Outline,
		Margin:           cfg.Layout.Margin,
		Slots:            cfg.Inventory.Slots,
		SlotSize:         cfg.Inventory.SlotSize,
		SlotPad:          cfg.Inventory.SlotPad,
	}
}

// Layout holds the outer rectangles (including outlines) of every panel in
// window coordinates.
type Layout struct {
	Params
	Window    geom.Size
	Inventory geom.Rect
	Canvas    geom.Rect
	Stats     geom.Rect
	Controls  geom.Rect
}

// New lays the panels out left to right with the controls box centred
// below them.
func New(p Params) Layout {
	o, m := p.Outline, p.Margin
	sideW := p.SidebarWidth + 2*o
	rowH := p.Scene.H + 2*o
	canvasW := p.Scene.W + 2*o

	l := Layout{Params: p}
	l.Inventory = geom.Rect{X: m, Y: m, W: sideW, H: rowH}
	l.Canvas = geom.Rect{X: l.Inventory.X + sideW + p.SidebarPad, Y: m, W: canvasW, H: rowH}
	l.Stats = geom.Rect{X: l.Canvas.X + canvasW + p.SidebarPad, Y: m, W: sideW, H: rowH}

	width := l.Stats.X + sideW + m
	ctrlW := p.Scene.W + 2*controlsBorder
	l.Controls = geom.Rect{
		X: (width - ctrlW) / 2,
		Y: m + rowH + controlsGap,
		W: ctrlW,
		H: p.ControlBoxHeight + 2*controlsBorder,
	}
	l.Window = geom.Size{W: width, H: l.Controls.Y + l.Controls.H + m}
	return l
}

// Inner returns r without its outline.
func (l Layout) Inner(r geom.Rect) geom.Rect {
	return r.Inset(l.Outline)
}

// ControlsInner returns the text area of the controls box.
func (l Layout) ControlsInner() geom.Rect {
	return l.Controls.Inset(controlsBorder)
}

// SlotRects returns the rectangle of each slot relative to the inventory
// panel's inner origin.
func (l Layout) SlotRects() []geom.Rect {
	return SlotRects(geom.Size{W: l.SidebarWidth, H: l.Scene.H}, l.Slots, l.SlotSize, l.SlotPad)
}

// SlotRects stacks n square slots of side size with pad between them,
// centred vertically and horizontally in panel. Units are whatever panel is
// measured in, so the terminal backend can use cells.
func SlotRects(panel geom.Size, n, size, pad int) []geom.Rect {
	total := n*size + (n-1)*pad
	y0 := (panel.H - total) / 2
	x0 := (panel.W - size) / 2
	rects := make([]geom.Rect, n)
	for i := range rects {
		rects[i] = geom.Rect{X: x0, Y: y0 + i*(size+pad), W: size, H: size}
	}
	return rects
}

// StatLineY returns the baseline of stat line i relative to the stats
// panel's inner origin.
func StatLineY(i int) int {
	return StatsFirstLineY + i*StatsLineHeight
}

// SlotLabel is the number shown in slot i.
func SlotLabel(i int) string {
	return fmt.Sprint(i + 1)
}

// ControlsText is the help line shown under the canvas.
func ControlsText(slots int) string {
	digits := "1"
	if slots > 1 {
		digits = fmt.Sprintf("1-%d", slots)
	}
	return fmt.Sprintf("Controls: W/A/S/D = Move | %s or ↑/↓ = Select Inventory Slot", digits)
}

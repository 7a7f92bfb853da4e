package hud

import (
	"testing"

	"chosenoffset.com/runebound/internal/config"
	"chosenoffset.com/runebound/internal/core/geom"
)

func TestDefaultLayout(t *testing.T) {
	l := New(ParamsFromConfig(config.Default()))

	if l.Inventory != (geom.Rect{X: 8, Y: 8, W: 93, H: 508}) {
		t.Errorf("Unexpected inventory rect %+v", l.Inventory)
	}
	if l.Canvas != (geom.Rect{X: 117, Y: 8, W: 808, H: 508}) {
		t.Errorf("Unexpected canvas rect %+v", l.Canvas)
	}
	if l.Stats != (geom.Rect{X: 941, Y: 8, W: 93, H: 508}) {
		t.Errorf("Unexpected stats rect %+v", l.Stats)
	}
	if l.Window != (geom.Size{W: 1042, H: 580}) {
		t.Errorf("Unexpected window size %+v", l.Window)
	}
	if in := l.Inner(l.Canvas); in.W != 800 || in.H != 500 {
		t.Errorf("Expected 800x500 inner canvas, got %dx%d", in.W, in.H)
	}
	if c := l.ControlsInner(); c.W != 800 || c.H != 30 {
		t.Errorf("Expected 800x30 controls text area, got %dx%d", c.W, c.H)
	}
}

func TestSlotRectsCentred(t *testing.T) {
	rects := SlotRects(geom.Size{W: 85, H: 500}, 8, 50, 8)
	if len(rects) != 8 {
		t.Fatalf("Expected 8 slots, got %d", len(rects))
	}
	// 8*50 + 7*8 = 456, so the stack starts at (500-456)/2 = 22.
	if rects[0] != (geom.Rect{X: 17, Y: 22, W: 50, H: 50}) {
		t.Errorf("Unexpected first slot %+v", rects[0])
	}
	if rects[7].Y != 22+7*58 {
		t.Errorf("Expected last slot at y=%d, got %d", 22+7*58, rects[7].Y)
	}
}

func TestLabels(t *testing.T) {
	if SlotLabel(0) != "1" || SlotLabel(7) != "8" {
		t.Errorf("Unexpected slot labels %q, %q", SlotLabel(0), SlotLabel(7))
	}
	want := "Controls: W/A/S/D = Move | 1-8 or ↑/↓ = Select Inventory Slot"
	if got := ControlsText(8); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := ControlsText(1); got != "Controls: W/A/S/D = Move | 1 or ↑/↓ = Select Inventory Slot" {
		t.Errorf("Unexpected single-slot controls text %q", got)
	}
	if StatLineY(2) != 104 {
		t.Errorf("Expected third stat line at 104, got %d", StatLineY(2))
	}
}

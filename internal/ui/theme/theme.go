// Package theme is the colour palette shared by the render backends.
package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette names every colour the scene uses.
type Palette struct {
	Window        color.RGBA // Background behind the panels
	Panel         color.RGBA // Canvas and sidebar fill
	Frame         color.RGBA // Panel outlines
	Player        color.RGBA
	PlayerOutline color.RGBA
	SlotFill      color.RGBA
	SlotBorder    color.RGBA
	SlotSelected  color.RGBA
	SlotNumber    color.RGBA
	SlotNumberSel color.RGBA
	StatsTitle    color.RGBA
	StatLabel     color.RGBA
	StatValue     color.RGBA
	ControlsText  color.RGBA
}

// Default returns the stock palette.
func Default() Palette {
	return Palette{
		Window:        colornames.Gray,
		Panel:         colornames.Black,
		Frame:         colornames.Yellow,
		Player:        MustHex("#FF3333"),
		PlayerOutline: MustHex("#880000"),
		SlotFill:      MustHex("#222"),
		SlotBorder:    MustHex("#666"),
		SlotSelected:  colornames.Yellow,
		SlotNumber:    MustHex("#AAA"),
		SlotNumberSel: colornames.White,
		StatsTitle:    MustHex("#4FC3F7"),
		StatLabel:     MustHex("#F9A825"),
		StatValue:     colornames.White,
		ControlsText:  colornames.White,
	}
}

// WithPlayer overrides the player colours with hex strings. Empty strings
// keep the current colour.
func (p Palette) WithPlayer(fill, outline string) (Palette, error) {
	if fill != "" {
		c, err := ParseHex(fill)
		if err != nil {
			return p, fmt.Errorf("player color: %w", err)
		}
		p.Player = c
	}
	if outline != "" {
		c, err := ParseHex(outline)
		if err != nil {
			return p, fmt.Errorf("player outline: %w", err)
		}
		p.PlayerOutline = c
	}
	return p, nil
}

// ParseHex parses "#RGB" or "#RRGGBB" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for constants.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

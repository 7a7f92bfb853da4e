// Package geom holds the small integer geometry types shared by the
// simulation, the loop and the renderers.
package geom

// Point is a position in scene pixels. For the player it is the top-left
// corner of the square.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width and height in scene pixels.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, W, H int
}

// Inset shrinks r by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// ClampInt constrains v to the closed interval [lo, hi]. If hi < lo the
// result is lo.
func ClampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Mod is the mathematical modulo: the result is always in [0, n) for n > 0,
// including when a is negative.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Package core holds the terminal-agnostic pieces shared by every game:
// the cell screen, input frames, colors and runtime config. It does not
// import Bubble Tea, so games can be stepped and rendered in plain tests.
package core

// Rect is a screen-space box; X, Y is the top-left cell.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect places a w x h box in the middle of an areaW x areaH area.
// Odd leftovers go to the right and bottom.
func CenteredRect(w, h, areaW, areaH int) Rect {
	return Rect{X: (areaW - w) / 2, Y: (areaH - h) / 2, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first row past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inner returns the area inside a one-cell border, never negative.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 1, W: max(r.W-2, 0), H: max(r.H-2, 0)}
}

// Wrap maps val into [0, n) cyclically. Returns 0 when n <= 0.
func Wrap(val, n int) int {
	if n <= 0 {
		return 0
	}
	val %= n
	if val < 0 {
		val += n
	}
	return val
}

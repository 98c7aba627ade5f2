package input

import (
	"github.com/lixenwraith/glimmer/vmath"
)

// Pointer is a normalized 2D input point in cell coordinates
// Mouse and single-touch input collapse to the same shape
type Pointer struct {
	X, Y float64
}

// Vec returns the pointer as a position vector
func (p Pointer) Vec() vmath.Vec2 {
	return vmath.Vec2{X: p.X, Y: p.Y}
}

// FromMouse converts integer mouse cell coordinates
func FromMouse(x, y int) Pointer {
	return Pointer{X: float64(x), Y: float64(y)}
}

// FromTouches normalizes a touch-point list to pointer semantics
// The first touch wins; an empty list reports no pointer
func FromTouches(pts []Pointer) (Pointer, bool) {
	if len(pts) == 0 {
		return Pointer{}, false
	}
	return pts[0], true
}

// Tracker keeps the previous and current pointer for delta-based effects
type Tracker struct {
	prev Pointer
	cur  Pointer
	seen bool
}

// Update records a new pointer sample
func (t *Tracker) Update(p Pointer) {
	if !t.seen {
		t.prev = p
		t.seen = true
	} else {
		t.prev = t.cur
	}
	t.cur = p
}

// Current returns the latest sample
func (t *Tracker) Current() Pointer {
	return t.cur
}

// Segment returns the last movement as from→to positions
func (t *Tracker) Segment() (from, to vmath.Vec2) {
	return t.prev.Vec(), t.cur.Vec()
}

// Delta returns the last movement vector
func (t *Tracker) Delta() vmath.Vec2 {
	return vmath.VSub(t.cur.Vec(), t.prev.Vec())
}

// Moved reports whether the last two samples differ
func (t *Tracker) Moved() bool {
	return t.seen && (t.prev.X != t.cur.X || t.prev.Y != t.cur.Y)
}

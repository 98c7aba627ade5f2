package render

import (
	"github.com/lixenwraith/glimmer/vmath"
)

// NullCanvas is the degraded no-op surface used when no backend initializes
// Effects keep running against it so sibling state stays consistent
type NullCanvas struct {
	w, h int
}

// NewNullCanvas creates a headless surface with a nominal extent
func NewNullCanvas(w, h int) *NullCanvas {
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return &NullCanvas{w: w, h: h}
}

func (c *NullCanvas) Factory() HandleFactory {
	return func(i int) Handle {
		return &nullHandle{}
	}
}

func (c *NullCanvas) Size() (int, int) {
	return c.w, c.h
}

func (c *NullCanvas) Flush() {}

func (c *NullCanvas) Fini() {}

// nullHandle records the last pushed state so tests can observe pool output
type nullHandle struct {
	Pos      vmath.Vec2
	Scale    float64
	Opacity  float64
	Disposed bool
}

func (h *nullHandle) SetTransform(pos vmath.Vec2, scale float64) {
	h.Pos = pos
	h.Scale = scale
}

func (h *nullHandle) SetOpacity(v float64) {
	h.Opacity = v
}

func (h *nullHandle) Dispose() {
	h.Disposed = true
	h.Opacity = 0
}

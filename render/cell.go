package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glimmer/vmath"
)

// scaleRamp maps particle scale to glyph weight, smallest to largest
var scaleRamp = []rune{'·', '∙', '•', '●', '█'}

// CellCanvas renders particle handles as colored terminal cells
// All handle mutation and Flush must happen on the tick goroutine;
// the mutex guards the handle list and the accent, which the host event
// loop may retint while a frame is being flushed
type CellCanvas struct {
	mu      sync.Mutex
	screen  tcell.Screen
	handles []*cellHandle
	accent  [3]float64
	fini    sync.Once
}

// NewCellCanvas acquires and initializes a terminal screen
// Returns *InitError when no terminal is available
func NewCellCanvas() (*CellCanvas, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, &InitError{Backend: "cell", Cause: err}
	}
	if err := screen.Init(); err != nil {
		return nil, &InitError{Backend: "cell", Cause: err}
	}
	screen.EnableMouse()
	screen.EnableFocus()

	return &CellCanvas{
		screen: screen,
		accent: [3]float64{1, 1, 1},
	}, nil
}

// Screen exposes the underlying terminal for event polling and HUD drawing
func (c *CellCanvas) Screen() tcell.Screen {
	return c.screen
}

// SetAccent sets the particle tint, components in [0,1]
// Safe to call from the event loop while a frame is flushing
func (c *CellCanvas) SetAccent(r, g, b float64) {
	c.mu.Lock()
	c.accent = [3]float64{
		vmath.Clamp01(r),
		vmath.Clamp01(g),
		vmath.Clamp01(b),
	}
	c.mu.Unlock()
}

func (c *CellCanvas) Factory() HandleFactory {
	return func(i int) Handle {
		h := &cellHandle{}
		c.mu.Lock()
		c.handles = append(c.handles, h)
		c.mu.Unlock()
		return h
	}
}

func (c *CellCanvas) Size() (int, int) {
	return c.screen.Size()
}

func (c *CellCanvas) Flush() {
	c.mu.Lock()
	accent := c.accent
	handles := c.handles
	c.mu.Unlock()

	w, h := c.screen.Size()
	for _, hd := range handles {
		if hd.disposed || hd.opacity <= 0 {
			continue
		}
		x := int(hd.pos.X + 0.5)
		y := int(hd.pos.Y + 0.5)
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}

		idx := int(hd.scale*float64(len(scaleRamp)-1) + 0.5)
		if idx < 0 {
			idx = 0
		} else if idx >= len(scaleRamp) {
			idx = len(scaleRamp) - 1
		}

		color := tcell.NewRGBColor(
			int32(accent[0]*hd.opacity*255),
			int32(accent[1]*hd.opacity*255),
			int32(accent[2]*hd.opacity*255),
		)
		c.screen.SetContent(x, y, scaleRamp[idx], nil, tcell.StyleDefault.Foreground(color))
	}
}

func (c *CellCanvas) Fini() {
	c.fini.Do(func() {
		c.screen.Fini()
	})
}

// cellHandle is one particle's cell, owned exclusively by its pool slot
type cellHandle struct {
	pos      vmath.Vec2
	scale    float64
	opacity  float64
	disposed bool
}

func (h *cellHandle) SetTransform(pos vmath.Vec2, scale float64) {
	h.pos = pos
	h.scale = scale
}

func (h *cellHandle) SetOpacity(v float64) {
	h.opacity = v
}

func (h *cellHandle) Dispose() {
	h.disposed = true
	h.opacity = 0
}

// Graphical ambient-field sandbox on ebiten: the field brightens near the
// pointer through the proximity curve instead of scroll progress
package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/glimmer/effect"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/vmath"
)

const (
	screenW = 640
	screenH = 360

	// Particle radius in pixels at scale 1
	baseRadius = 4.0

	// Glow radius in pixels around the screen center target
	glowRadius = 160.0
)

// dotHandle is the ebiten-side visual; the Draw pass reads what the pool
// pushed during Update
type dotHandle struct {
	pos      vmath.Vec2
	scale    float64
	opacity  float64
	disposed bool
}

func (h *dotHandle) SetTransform(pos vmath.Vec2, scale float64) {
	h.pos = pos
	h.scale = scale
}

func (h *dotHandle) SetOpacity(v float64) { h.opacity = v }
func (h *dotHandle) Dispose()             { h.disposed = true; h.opacity = 0 }

type game struct {
	field   *effect.Field
	handles []*dotHandle
	reveal  *effect.Reveal
	last    time.Time
}

func newGame() (*game, error) {
	g := &game{
		reveal: effect.NewReveal(0),
		last:   time.Now(),
	}

	factory := render.HandleFactory(func(i int) render.Handle {
		h := &dotHandle{}
		g.handles = append(g.handles, h)
		return h
	})

	field, err := effect.NewField(effect.DefaultFieldOptions(), factory)
	if err != nil {
		return nil, err
	}
	field.SetBounds(screenW, screenH)
	g.field = field
	return g, nil
}

// Update runs on ebiten's frame callback; the host drives the refresh, so
// delta is measured here instead of by a scheduler
func (g *game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	mx, my := ebiten.CursorPosition()
	pointer := vmath.Vec2{X: float64(mx), Y: float64(my)}
	target := vmath.Vec2{X: screenW / 2, Y: screenH / 2}

	glow := effect.Glow(pointer, target, glowRadius)
	g.reveal.Observe(glow)
	g.field.SetIntensity(glow)

	g.field.Advance(dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for _, h := range g.handles {
		if h.disposed || h.opacity <= 0 {
			continue
		}
		a := uint8(h.opacity * 255)
		clr := color.RGBA{R: uint8(float64(a) * 0.4), G: uint8(float64(a) * 0.75), B: a, A: a}
		vector.DrawFilledCircle(screen,
			float32(h.pos.X), float32(h.pos.Y),
			float32(baseRadius*h.scale), clr, true)
	}

	if g.reveal.Shown() {
		vector.StrokeCircle(screen, screenW/2, screenH/2, 10,
			1, color.RGBA{R: 255, G: 255, B: 255, A: 128}, true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	g, err := newGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("glimmer glow sandbox")
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

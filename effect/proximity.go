package effect

import (
	"github.com/lixenwraith/glimmer/parameter"
	"github.com/lixenwraith/glimmer/vmath"
)

// Glow returns inverse-distance intensity in [0,1]
// 1 at the target, falling linearly to 0 at radius
func Glow(pointer, target vmath.Vec2, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return vmath.Clamp01(1 - vmath.VDist(pointer, target)/radius)
}

// Reveal is threshold-based show/hide driven by proximity intensity
type Reveal struct {
	Threshold float64
	shown     bool
}

// NewReveal creates a reveal gate; threshold <= 0 selects the default
func NewReveal(threshold float64) *Reveal {
	if threshold <= 0 {
		threshold = parameter.RevealThresholdFloat
	}
	return &Reveal{Threshold: threshold}
}

// Observe feeds an intensity sample and reports the visible state plus
// whether this sample flipped it
func (r *Reveal) Observe(intensity float64) (shown, changed bool) {
	next := intensity >= r.Threshold
	changed = next != r.shown
	r.shown = next
	return next, changed
}

// Shown returns the current visible state
func (r *Reveal) Shown() bool {
	return r.shown
}

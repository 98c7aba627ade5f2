package render

import (
	"github.com/lixenwraith/glimmer/vmath"
)

// Handle is the visual representation owned by a single particle slot
// The pool only moves, fades and disposes handles; it never assumes a backend
type Handle interface {
	// SetTransform positions the visual and scales it, scale in [0,1]
	SetTransform(pos vmath.Vec2, scale float64)

	// SetOpacity sets visibility, 0 hidden to 1 fully visible
	SetOpacity(v float64)

	// Dispose releases the visual permanently
	Dispose()
}

// HandleFactory produces the handle for pool slot index i
type HandleFactory func(i int) Handle

// Canvas is a surface that owns handles and presents them once per frame
type Canvas interface {
	// Factory returns the handle factory bound to this canvas
	Factory() HandleFactory

	// Size returns the drawable extent in cells
	Size() (w, h int)

	// Flush draws all live handles onto the surface
	// Presentation (sync to display) stays with the surface owner
	Flush()

	// Fini releases the surface; idempotent
	Fini()
}

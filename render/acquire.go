package render

import (
	"go.uber.org/zap"
)

// AcquireCanvas negotiates the best available surface once at startup
// A failed terminal acquisition degrades to the null canvas and is logged,
// never surfaced as a fatal error
func AcquireCanvas(logger *zap.Logger) Canvas {
	if logger == nil {
		logger = zap.NewNop()
	}

	canvas, err := NewCellCanvas()
	if err != nil {
		logger.Warn("terminal surface unavailable, degrading to null canvas",
			zap.Error(err))
		return NewNullCanvas(0, 0)
	}
	return canvas
}

package scroll

import (
	"errors"
	"time"
)

var ErrSmoothUnavailable = errors.New("scroll: smooth scroller did not become available")

// OffsetSource exposes native scroll metrics: current offset and the maximum
// scrollable extent. The degraded-mode publisher reads these directly
type OffsetSource interface {
	Offset() float64
	MaxExtent() float64
	SetOffset(v float64)
}

// SmoothScroller is the optional physics-driven enhancement
// When acquired, the publisher defers offset reads and animated jumps to it
type SmoothScroller interface {
	Offset() float64
	MaxExtent() float64
	AnimateTo(offset float64, d time.Duration) error
}

// Capability records the outcome of the one-time smooth-scroll negotiation
// Availability is branched on once at startup, not re-checked per call
type Capability struct {
	Available bool
	Err       error
}

// NativeSource is an in-memory offset source standing in for host scroll
// metrics. Demos and tests drive it directly
type NativeSource struct {
	offset float64
	max    float64
}

func NewNativeSource(max float64) *NativeSource {
	return &NativeSource{max: max}
}

func (s *NativeSource) Offset() float64 {
	return s.offset
}

func (s *NativeSource) MaxExtent() float64 {
	return s.max
}

func (s *NativeSource) SetOffset(v float64) {
	s.offset = v
}

// SetMaxExtent adjusts the scrollable range, e.g. on resize
func (s *NativeSource) SetMaxExtent(max float64) {
	s.max = max
}

package parameter

import (
	"time"
)

// Scroll Publisher
const (
	// ScrollQuietPeriod is the debounce window before Scrolling flips back to false
	ScrollQuietPeriod = 150 * time.Millisecond

	// SmoothScrollAcquireTimeout bounds the wait for the optional smooth-scroll capability
	SmoothScrollAcquireTimeout = 2 * time.Second

	// ScrollToDefaultDuration is the animated scroll duration when the caller gives none
	ScrollToDefaultDuration = 400 * time.Millisecond

	// ScrollToTolerance is the acceptable final position error (cells)
	ScrollToTolerance = 0.5
)

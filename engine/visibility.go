package engine

// VisibilitySource notifies subscribers when the host surface is hidden or
// shown, e.g. terminal focus loss. A nil source degrades to always-visible
type VisibilitySource interface {
	// Subscribe registers fn and returns a cancel func
	// Implementations call fn immediately with the current state
	Subscribe(fn func(visible bool)) (cancel func())
}

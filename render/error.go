package render

import (
	"fmt"
)

// InitError reports an unavailable rendering surface
// Callers are expected to degrade to the null canvas, never to abort startup
type InitError struct {
	Backend string
	Cause   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("render: %s backend unavailable: %v", e.Backend, e.Cause)
}

func (e *InitError) Unwrap() error {
	return e.Cause
}

package render

import (
	"sync"
)

// FocusSignal fans terminal focus changes out to visibility subscribers
// The application event loop feeds it from *tcell.EventFocus; the frame
// scheduler subscribes to pause while the terminal is unfocused
type FocusSignal struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]func(visible bool)
	visible bool
}

func NewFocusSignal() *FocusSignal {
	return &FocusSignal{
		subs:    make(map[int]func(visible bool)),
		visible: true,
	}
}

// Subscribe registers fn and returns a cancel func; fn is called immediately
// with the current state so late subscribers converge
func (s *FocusSignal) Subscribe(fn func(visible bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	visible := s.visible
	s.mu.Unlock()

	fn(visible)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Notify publishes a focus transition; duplicate states are suppressed
func (s *FocusSignal) Notify(visible bool) {
	s.mu.Lock()
	if s.visible == visible {
		s.mu.Unlock()
		return
	}
	s.visible = visible
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(visible)
	}
}

// Visible reports the current focus state
func (s *FocusSignal) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

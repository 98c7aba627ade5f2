package particle

import (
	"testing"

	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/vmath"
)

// testHandle records what the pool pushed to it
type testHandle struct {
	pos        vmath.Vec2
	scale      float64
	opacity    float64
	transforms int
	disposed   bool
}

func (h *testHandle) SetTransform(pos vmath.Vec2, scale float64) {
	h.pos = pos
	h.scale = scale
	h.transforms++
}

func (h *testHandle) SetOpacity(v float64) { h.opacity = v }
func (h *testHandle) Dispose()             { h.disposed = true }

func newTestPool(t *testing.T, size int) (*Pool, []*testHandle) {
	t.Helper()

	var handles []*testHandle
	pool, err := NewPool(size, func(i int) render.Handle {
		h := &testHandle{}
		handles = append(handles, h)
		return h
	})
	if err != nil {
		t.Fatalf("NewPool(%d) failed: %v", size, err)
	}
	pool.SetSeed(1)
	return pool, handles
}

func TestNewPoolRejectsBadArgs(t *testing.T) {
	if _, err := NewPool(0, func(i int) render.Handle { return &testHandle{} }); err != ErrEmptyPool {
		t.Errorf("size 0: got %v, want ErrEmptyPool", err)
	}
	if _, err := NewPool(-5, func(i int) render.Handle { return &testHandle{} }); err != ErrEmptyPool {
		t.Errorf("negative size: got %v, want ErrEmptyPool", err)
	}
	if _, err := NewPool(4, nil); err != ErrNilFactory {
		t.Errorf("nil factory: got %v, want ErrNilFactory", err)
	}
}

func TestNewPoolAllocatesAllSlotsInactive(t *testing.T) {
	pool, handles := newTestPool(t, 8)

	if pool.Size() != 8 {
		t.Errorf("Size = %d, want 8", pool.Size())
	}
	if len(handles) != 8 {
		t.Errorf("factory called %d times, want 8", len(handles))
	}
	if pool.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", pool.LiveCount())
	}
	for i := 0; i < 8; i++ {
		if pool.Slot(i).Active {
			t.Errorf("slot %d active before any spawn", i)
		}
	}
}

func TestSpawnRoundRobinWrap(t *testing.T) {
	// After N+1 spawns exactly one previously-active slot was overwritten
	const n = 5
	pool, _ := newTestPool(t, n)

	for i := 0; i < n; i++ {
		pool.Spawn(vmath.Vec2{X: float64(i)}, vmath.Vec2{})
	}
	if pool.LiveCount() != n {
		t.Fatalf("LiveCount after %d spawns = %d, want %d", n, pool.LiveCount(), n)
	}

	pool.Spawn(vmath.Vec2{X: 99}, vmath.Vec2{})

	if pool.LiveCount() != n {
		t.Errorf("LiveCount after wrap = %d, want %d (overwrite, not grow)", pool.LiveCount(), n)
	}
	if got := pool.Slot(0).Pos.X; got != 99 {
		t.Errorf("slot 0 position = %v, want 99 (wrapped spawn overwrites oldest slot)", got)
	}
	for i := 1; i < n; i++ {
		if got := pool.Slot(i).Pos.X; got != float64(i) {
			t.Errorf("slot %d position = %v, want %d (untouched by wrap)", i, got, i)
		}
	}
}

func TestSpawnResetsSlotState(t *testing.T) {
	pool, handles := newTestPool(t, 2)

	pool.Spawn(vmath.Vec2{X: 3, Y: 4}, vmath.Vec2{})
	s := pool.Slot(0)

	if !s.Active {
		t.Error("spawned slot not active")
	}
	if s.Life != 1.0 {
		t.Errorf("spawned life = %v, want 1.0", s.Life)
	}
	if s.Pos.X != 3 || s.Pos.Y != 4 {
		t.Errorf("spawned position = %v, want {3 4}", s.Pos)
	}
	if handles[0].opacity != 1.0 {
		t.Errorf("spawned visual opacity = %v, want 1.0", handles[0].opacity)
	}
}

func TestSpawnJitterIsBounded(t *testing.T) {
	pool, _ := newTestPool(t, 32)
	pool.SetJitter(2)

	bias := vmath.Vec2{X: 10, Y: -5}
	for i := 0; i < 32; i++ {
		pool.Spawn(vmath.Vec2{}, bias)
	}
	for i := 0; i < 32; i++ {
		v := pool.Slot(i).Vel
		if v.X < 8 || v.X >= 12 || v.Y < -7 || v.Y >= -3 {
			t.Errorf("slot %d velocity %v outside bias±jitter bounds", i, v)
		}
	}
}

func TestAdvanceLifeMonotonicAndExactZero(t *testing.T) {
	pool, _ := newTestPool(t, 1)
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})

	integ := Integrator{Drag: 1}
	prev := pool.Slot(0).Life
	for i := 0; i < 10; i++ {
		pool.Advance(0.15, 1.0, integ)
		s := pool.Slot(0)
		if s.Life > prev {
			t.Fatalf("life increased between spawns: %v -> %v", prev, s.Life)
		}
		prev = s.Life
		if !s.Active {
			if s.Life != 0 {
				t.Fatalf("deactivated slot has life %v, want exactly 0", s.Life)
			}
			return
		}
	}
	t.Fatal("particle never died with decay 1.0 over 1.5s")
}

func TestAdvanceHidesDeadVisual(t *testing.T) {
	pool, handles := newTestPool(t, 1)
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})

	pool.Advance(2.0, 1.0, Integrator{Drag: 1})

	if pool.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", pool.LiveCount())
	}
	if handles[0].opacity != 0 {
		t.Errorf("dead visual opacity = %v, want 0", handles[0].opacity)
	}
}

func TestAdvanceSkipsInactiveSlots(t *testing.T) {
	pool, handles := newTestPool(t, 4)
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})

	before := handles[3].transforms
	pool.Advance(0.01, 1.0, Integrator{Drag: 1})
	if handles[3].transforms != before {
		t.Error("inactive slot received a transform")
	}
}

func TestAdvanceUpdatesVisualFromLife(t *testing.T) {
	pool, handles := newTestPool(t, 1)
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})

	// 0.5s at decay 1.0 leaves life 0.5: opacity 0.25, scale floor + half range
	pool.Advance(0.5, 1.0, Integrator{Drag: 1})

	s := pool.Slot(0)
	if !almostEqual(s.Life, 0.5) {
		t.Fatalf("life = %v, want 0.5", s.Life)
	}
	if !almostEqual(handles[0].opacity, 0.25) {
		t.Errorf("opacity at life 0.5 = %v, want 0.25", handles[0].opacity)
	}
	if !almostEqual(handles[0].scale, Scale(0.5)) {
		t.Errorf("scale at life 0.5 = %v, want %v", handles[0].scale, Scale(0.5))
	}
}

func TestDisposeAllIsTerminal(t *testing.T) {
	pool, handles := newTestPool(t, 3)
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})

	pool.DisposeAll()

	for i, h := range handles {
		if !h.disposed {
			t.Errorf("handle %d not disposed", i)
		}
	}
	if pool.LiveCount() != 0 {
		t.Errorf("LiveCount after dispose = %d, want 0", pool.LiveCount())
	}

	// Terminal: later calls are no-ops
	pool.Spawn(vmath.Vec2{}, vmath.Vec2{})
	if pool.LiveCount() != 0 {
		t.Error("Spawn after DisposeAll revived the pool")
	}
	pool.Advance(0.1, 1.0, Integrator{Drag: 1})
	pool.DisposeAll()
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

package effect

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/glimmer/scroll"
)

func newTestField(t *testing.T, opts FieldOptions) *Field {
	t.Helper()
	f, err := NewField(opts, nullFactory())
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	f.SetBounds(80, 24)
	f.SetSeed(1)
	return f
}

func TestFieldAccruesSpawnBudget(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.PoolSize = 64
	opts.SpawnBudget = 10 // spawns/sec at full intensity
	opts.DecayRate = 0    // isolate spawning
	f := newTestField(t, opts)
	f.SetIntensity(1)

	// 1 second in small ticks: budget must land on exactly 10 spawns
	for i := 0; i < 40; i++ {
		f.Advance(0.025)
	}

	if got := f.Pool().LiveCount(); got != 10 {
		t.Errorf("live particles after 1s = %d, want 10", got)
	}
}

func TestFieldIntensityScalesCadence(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.PoolSize = 64
	opts.SpawnBudget = 20
	opts.DecayRate = 0
	opts.MinIntensity = 0.1
	f := newTestField(t, opts)

	f.SetIntensity(0.5)
	for i := 0; i < 40; i++ {
		f.Advance(0.025)
	}

	if got := f.Pool().LiveCount(); got != 10 {
		t.Errorf("live particles at half intensity = %d, want 10", got)
	}
}

func TestFieldIntensityClampsToFloor(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.MinIntensity = 0.15
	f := newTestField(t, opts)

	f.SetIntensity(0)
	if got := f.Intensity(); got != 0.15 {
		t.Errorf("intensity = %v, want floor 0.15", got)
	}
	f.SetIntensity(3)
	if got := f.Intensity(); got != 1 {
		t.Errorf("intensity = %v, want ceiling 1", got)
	}
}

func TestFieldNoSpawnWithoutBounds(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.SpawnBudget = 100
	f, err := NewField(opts, nullFactory())
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	f.SetIntensity(1)

	f.Advance(1)
	if got := f.Pool().LiveCount(); got != 0 {
		t.Errorf("spawned %d particles without bounds", got)
	}
}

func TestFieldFollowsScrollState(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.MinIntensity = 0.2
	f := newTestField(t, opts)

	pub := scroll.NewPublisher(nil, time.Minute, nil)
	defer pub.Close()
	f.BindScroll(pub)

	pub.Feed(100, 100)
	if got := f.Intensity(); got != 1 {
		t.Errorf("intensity at full progress = %v, want 1", got)
	}
	if f.driftSign != 1 {
		t.Errorf("driftSign = %v after downward scroll, want 1", f.driftSign)
	}

	pub.Feed(50, 100)
	if got := f.Intensity(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("intensity at half progress = %v, want 0.6", got)
	}
	if f.driftSign != -1 {
		t.Errorf("driftSign = %v after upward scroll, want -1", f.driftSign)
	}
}

func TestFieldScrollDeliveryConcurrentWithAdvance(t *testing.T) {
	// Scroll events are delivered on the publisher's goroutine while the
	// tick goroutine advances; both touch intensity and drift
	f := newTestField(t, DefaultFieldOptions())
	pub := scroll.NewPublisher(nil, time.Minute, nil)
	defer pub.Close()
	f.BindScroll(pub)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			pub.Feed(float64(i%100), 100)
		}
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			f.Advance(0.001)
		}
	}()

	time.Sleep(50 * time.Millisecond)
	close(done)
	wg.Wait()

	if got := f.Intensity(); got < DefaultFieldOptions().MinIntensity || got > 1 {
		t.Errorf("intensity = %v, outside [floor,1] after concurrent updates", got)
	}
}

func TestTwoFieldsShareOnePublisher(t *testing.T) {
	a := newTestField(t, DefaultFieldOptions())
	b := newTestField(t, DefaultFieldOptions())

	pub := scroll.NewPublisher(nil, time.Minute, nil)
	defer pub.Close()
	a.BindScroll(pub)
	b.BindScroll(pub)

	pub.Feed(100, 100)

	if a.Intensity() != 1 {
		t.Errorf("first field intensity = %v, want 1", a.Intensity())
	}
	if b.Intensity() != 1 {
		t.Errorf("second field intensity = %v, want 1 (subscription must not be replaced)", b.Intensity())
	}
}

func TestFieldSpawnsInsideBounds(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.PoolSize = 32
	opts.SpawnBudget = 32
	opts.DecayRate = 0
	opts.DriftSpeed = 0
	f := newTestField(t, opts)
	f.Pool().SetJitter(0)
	f.SetIntensity(1)

	f.Advance(1)

	for i := 0; i < f.Pool().Size(); i++ {
		p := f.Pool().Slot(i)
		if !p.Active {
			continue
		}
		if p.Pos.X < 0 || p.Pos.X > 80 || p.Pos.Y < 0 || p.Pos.Y > 24 {
			t.Errorf("slot %d spawned out of bounds at %v", i, p.Pos)
		}
	}
}

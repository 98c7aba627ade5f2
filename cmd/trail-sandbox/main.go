// Minimal cursor-trail sandbox: move the mouse, watch the wake decay
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/glimmer/effect"
	"github.com/lixenwraith/glimmer/engine"
	"github.com/lixenwraith/glimmer/input"
	"github.com/lixenwraith/glimmer/render"
)

func main() {
	canvas, err := render.NewCellCanvas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer canvas.Fini()

	trail, err := effect.NewTrail(effect.DefaultTrailOptions(), canvas.Factory())
	if err != nil {
		canvas.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer trail.Dispose()

	clock := engine.NewPausableClock()
	sched := engine.NewFrameScheduler(clock, 0, nil)
	defer sched.Stop()

	screen := canvas.Screen()
	var tracker input.Tracker

	// Ticks and input both touch the trail; the event channel keeps all
	// mutation on this goroutine, teacher-loop style
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticks := make(chan float64, 1)
	sched.Start(func(now time.Time, dt time.Duration) {
		select {
		case ticks <- dt.Seconds():
		default:
		}
	})

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
					return
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				tracker.Update(input.FromMouse(x, y))
				if tracker.Moved() {
					from, to := tracker.Segment()
					trail.PointerMoved(from, to)
				}
			}

		case dt := <-ticks:
			trail.Advance(dt)
			screen.Clear()
			canvas.Flush()
			screen.Show()
		}
	}
}

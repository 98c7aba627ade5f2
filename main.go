package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/glimmer/config"
	"github.com/lixenwraith/glimmer/effect"
	"github.com/lixenwraith/glimmer/input"
	"github.com/lixenwraith/glimmer/render"
	"github.com/lixenwraith/glimmer/scroll"
	"github.com/lixenwraith/glimmer/theme"
)

const (
	// Virtual page height in screens; the wheel scrolls through this range
	virtualPages = 4

	// Wheel offset step in cells per notch
	wheelStep = 3.0
)

func main() {
	configPath := flag.String("config", "glimmer.yaml", "tuning config path")
	logPath := flag.String("log", "", "write structured logs to this file")
	flag.Parse()

	logger := newLogger(*logPath)
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	canvas := render.AcquireCanvas(logger)
	cell, hasTerm := canvas.(*render.CellCanvas)

	// The theme is written on the event loop and read by the tick closure
	store := theme.NewStore("glimmer", logger)
	var themeMu sync.Mutex
	current := store.Load()
	if hasTerm {
		cell.SetAccent(current.Accent())
	}

	_, h := canvas.Size()
	source := scroll.NewNativeSource(float64(h * virtualPages))

	app, err := effect.NewApp(cfg, canvas, source, logger)
	if err != nil {
		canvas.Fini()
		fmt.Fprintf(os.Stderr, "failed to initialize effects: %v\n", err)
		os.Exit(1)
	}

	// The terminal build ships no smooth-scroll library; negotiate once and
	// run degraded against native offsets
	app.Publisher.Acquire(nil, 0)

	focus := render.NewFocusSignal()
	app.BindVisibility(focus)

	app.Start(func(now time.Time, dt time.Duration) {
		if !hasTerm {
			return
		}
		themeMu.Lock()
		th := current
		themeMu.Unlock()

		screen := cell.Screen()
		screen.Clear()
		cell.Flush()
		drawHUD(screen, app.Publisher.State(), th, app.Scheduler.IsPaused())
		screen.Show()
	})
	defer app.Stop()

	if !hasTerm {
		// Headless degraded mode: effects tick against the null canvas
		fmt.Fprintln(os.Stderr, "no terminal available, running headless for 2s")
		time.Sleep(2 * time.Second)
		return
	}

	screen := cell.Screen()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return
			case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
				themeMu.Lock()
				current = theme.Next(current)
				next := current
				themeMu.Unlock()
				store.Save(next)
				cell.SetAccent(next.Accent())
			case ev.Key() == tcell.KeyHome:
				app.Publisher.ScrollTo(scroll.OffsetTarget(0), 0)
			case ev.Key() == tcell.KeyEnd:
				app.Publisher.ScrollTo(scroll.OffsetTarget(source.MaxExtent()), 0)
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
				if app.Scheduler.IsPaused() {
					app.Scheduler.Resume()
				} else {
					app.Scheduler.Pause()
				}
			}

		case *tcell.EventMouse:
			x, y := ev.Position()
			app.PointerMoved(input.FromMouse(x, y))

			if ev.Buttons()&tcell.WheelDown != 0 {
				source.SetOffset(source.Offset() + wheelStep)
				app.Publisher.Sync()
			} else if ev.Buttons()&tcell.WheelUp != 0 {
				source.SetOffset(source.Offset() - wheelStep)
				app.Publisher.Sync()
			}

		case *tcell.EventResize:
			w, h := screen.Size()
			app.Resize(w, h)
			source.SetMaxExtent(float64(h * virtualPages))

		case *tcell.EventFocus:
			focus.Notify(ev.Focused)
		}
	}
}

// newLogger builds a file-backed production logger, or a nop one so log
// output never bleeds into the terminal surface
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// drawHUD renders the scroll progress bar and status line on the bottom rows
func drawHUD(screen tcell.Screen, st scroll.State, current theme.Theme, paused bool) {
	w, h := screen.Size()
	if h < 2 {
		return
	}

	barY := h - 2
	filled := int(st.Progress * float64(w))
	for x := 0; x < w; x++ {
		r := '░'
		if x < filled {
			r = '█'
		}
		screen.SetContent(x, barY, r, nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	status := fmt.Sprintf(" %s  %3.0f%%  %s ", current, st.Progress*100, st.Direction)
	if st.Scrolling {
		status += "scrolling "
	}
	if paused {
		status += "paused "
	}
	status += " [t]heme [p]ause [q]uit"
	drawText(screen, 0, h-1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	w, _ := screen.Size()
	for i, r := range s {
		if x+i >= w {
			return
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}

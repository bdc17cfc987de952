// sim-clock runs the word clock in a terminal, against the system clock, for working on the face
// and the loop without the hardware.  '+' or the up arrow is the increment button, '-' or the down
// arrow is the decrement button, and escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/jrockway/beaglebone-word-clock/control/clock"
	"github.com/jrockway/beaglebone-word-clock/control/face"
	"github.com/jrockway/beaglebone-word-clock/control/rtc"
)

var (
	tick            = flag.Duration("tick", 20*time.Millisecond, "time between refreshes of the terminal")
	debounce        = flag.Int("debounce", 2, "ticks a key must be held to register")
	resync          = flag.Int("resync", 50, "ticks between reads of the system clock")
	transitionEvery = flag.Int("transition-every", 4, "ticks between rows of the hour change animation")
	transitionSteps = flag.Int("transition-steps", 14, "rows scrolled by the hour change animation")
	repeat          = flag.Bool("repeat", false, "repeat adjustments while a key is held")
	mute            = flag.Bool("mute", false, "don't chime on the hour")
	logFile         = flag.String("log", "", "file to log to; the terminal is busy")
)

const sampleRate = beep.SampleRate(44100)

var (
	litStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	unlitStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// terminal is both the display and the buttons.  Keys arrive from PollEvent on another goroutine;
// everything else happens on the clock loop.
type terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   func()
	tick   time.Duration
	hold   int

	cl             *clock.Clock
	upFor, downFor int
}

// Pressed implements clock.Inputs.  A key press holds the matching button down for long enough to
// get past the debouncer.
func (t *terminal) Pressed() (bool, bool) {
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			t.handle(ev)
		default:
			drained = true
		}
	}
	up, down := t.upFor > 0, t.downFor > 0
	if t.upFor > 0 {
		t.upFor--
	}
	if t.downFor > 0 {
		t.downFor--
	}
	return up, down
}

func (t *terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			t.quit()
		case ev.Key() == tcell.KeyUp || ev.Key() == tcell.KeyRune && ev.Rune() == '+':
			t.upFor = t.hold
		case ev.Key() == tcell.KeyDown || ev.Key() == tcell.KeyRune && ev.Rune() == '-':
			t.downFor = t.hold
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Refresh implements clock.Display.
func (t *terminal) Refresh(g face.Grid) int {
	t.screen.Clear()
	for row := 0; row < face.Rows; row++ {
		for col := 0; col < face.Cols; col++ {
			style := unlitStyle
			if g.Lit(row, col) {
				style = litStyle
			}
			t.screen.SetContent(2+col*2, 1+row, rune(face.Letters[row][col]), nil, style)
		}
	}
	if t.cl != nil {
		s := t.cl.State()
		status := fmt.Sprintf("%v  %s", s, face.Phrase(s.Hour, s.Minute))
		if t.cl.Animating() {
			status = fmt.Sprintf("%v  ...", s)
		}
		drawString(t.screen, 2, face.Rows+2, status)
	}
	drawString(t.screen, 2, face.Rows+3, "+/- adjust, esc quits")
	t.screen.Show()
	time.Sleep(t.tick)
	return g.NonEmpty()
}

func drawString(s tcell.Screen, x, y int, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, textStyle)
	}
}

// chime strikes the hour, twelve for midnight and noon.
func chime(hour int) {
	n := hour % 12
	if n == 0 {
		n = 12
	}
	var strikes []beep.Streamer
	for i := 0; i < n; i++ {
		tone, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			log.Printf("chime: %v", err)
			return
		}
		strikes = append(strikes,
			beep.Take(sampleRate.N(150*time.Millisecond), tone),
			generators.Silence(sampleRate.N(250*time.Millisecond)))
	}
	speaker.Play(beep.Seq(strikes...))
}

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create terminal screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal screen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := &terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		quit:   cancel,
		tick:   *tick,
		hold:   *debounce + 1,
	}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// The screen was finalized.
				return
			}
			t.events <- ev
		}
	}()

	cl := clock.New(clock.Config{
		Debounce:        *debounce,
		AutoRepeat:      *repeat,
		Resync:          *resync,
		TransitionEvery: *transitionEvery,
		TransitionSteps: *transitionSteps,
	}, rtc.NewSystem(), t, t)
	t.cl = cl

	if !*mute {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			// Non-fatal, the clock works fine silently.
			log.Printf("audio init failed: %v", err)
		} else {
			cl.HourChanged = chime
		}
	}

	if err := cl.Start(); err != nil {
		log.Printf("start clock: %v", err)
	}
	err = cl.Run(ctx)
	screen.Fini()
	if !errors.Is(err, context.Canceled) {
		log.Fatalf("clock loop died: %v", err)
	}
}

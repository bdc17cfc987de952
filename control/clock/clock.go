// Package clock runs the word clock: it keeps the displayed time in step with a time source,
// applies button adjustments, animates hour changes, and scans the result out to the lamps.
//
// Everything happens on one goroutine, one tick at a time.  A tick is one full refresh of the
// lamps, so the tick rate is set by the display's dwell time and the counts in Config are in
// refreshes.
package clock

import (
	"context"
	"fmt"

	"github.com/jrockway/beaglebone-word-clock/control/face"
	"github.com/jrockway/beaglebone-word-clock/control/transition"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/net/trace"
)

var (
	rtcReadsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordclock_rtc_reads_total",
		Help: "reads of the time source, by result (ok, error, invalid)",
	}, []string{"result"})

	rtcWriteErrorsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_rtc_write_errors_total",
		Help: "failed writes of an adjusted time to the time source",
	})

	adjustmentsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordclock_adjustments_total",
		Help: "button adjustments, by direction",
	}, []string{"direction"})

	hourTransitionsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_hour_transitions_total",
		Help: "hour changes noticed by a resync",
	})
)

// TimeSource is where the clock gets the time from, and where adjustments are saved.
type TimeSource interface {
	ReadTime() (hour, minute int, err error)
	WriteTime(hour, minute int) error
}

// Display shows a grid.  It is called once per tick and must return promptly; the scanner's dwell
// is what paces the loop.
type Display interface {
	Refresh(g face.Grid) int
}

// Displays fans a grid out to several displays.  The first display's result is returned.
type Displays []Display

// Refresh implements Display.
func (ds Displays) Refresh(g face.Grid) int {
	var n int
	for i, d := range ds {
		if r := d.Refresh(g); i == 0 {
			n = r
		}
	}
	return n
}

// Inputs reports the raw state of the increment and decrement buttons.
type Inputs interface {
	Pressed() (up, down bool)
}

// Config controls the timing of the loop.  All counts are in ticks.
type Config struct {
	// Debounce is how long a button must be held to register.  It should be longer than one
	// tick so that bounce within a single refresh cannot trigger an adjustment.
	Debounce int
	// AutoRepeat makes a held button step again every Debounce ticks.
	AutoRepeat bool
	// Resync is how often the time source is read.
	Resync int
	// TransitionEvery and TransitionSteps shape the hour change animation.
	TransitionEvery int
	TransitionSteps int
}

// DefaultConfig is tuned for a 2ms dwell: a resync about once a second and a debounce of a
// third of that.
var DefaultConfig = Config{
	Debounce:        30,
	Resync:          100,
	TransitionEvery: transition.DefaultEvery,
	TransitionSteps: transition.DefaultSteps,
}

// Clock is the main loop of the word clock.
type Clock struct {
	// HourChanged, if set, is called from the loop when a resync finds a new hour.
	HourChanged func(hour int)

	cfg     Config
	src     TimeSource
	in      Inputs
	out     Display
	l       trace.EventLog
	buttons Debouncer
	anim    *transition.Animator

	state     State
	grid      face.Grid
	sinceSync int
	synced    bool // whether state has ever come from the time source
}

// New returns a Clock.  Zero fields in cfg are taken from DefaultConfig.  Call Start before Step
// or Run.
func New(cfg Config, src TimeSource, in Inputs, out Display) *Clock {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig.Debounce
	}
	if cfg.Resync <= 0 {
		cfg.Resync = DefaultConfig.Resync
	}
	return &Clock{
		cfg:     cfg,
		src:     src,
		in:      in,
		out:     out,
		l:       trace.NewEventLog("clock", fmt.Sprintf("%v", src)),
		buttons: Debouncer{Threshold: cfg.Debounce, Repeat: cfg.AutoRepeat},
		anim:    transition.New(cfg.TransitionEvery, cfg.TransitionSteps),
	}
}

// Start reads the time source and renders the first grid.  If the read fails the clock shows
// midnight until a resync succeeds, and that first good read is rendered without an hour change
// animation; the error is returned so the caller can report it.
func (c *Clock) Start() error {
	h, m, err := c.src.ReadTime()
	if err != nil {
		rtcReadsCounter.WithLabelValues("error").Inc()
		c.l.Errorf("initial read: %v", err)
		c.grid = face.Render(c.state.Hour, c.state.Minute)
		return fmt.Errorf("read time source: %w", err)
	}
	s := State{Hour: h, Minute: m}
	if !s.Valid() {
		rtcReadsCounter.WithLabelValues("invalid").Inc()
		c.l.Errorf("initial read: invalid time %v", s)
		c.grid = face.Render(c.state.Hour, c.state.Minute)
		return fmt.Errorf("read time source: got %v: out of range", s)
	}
	rtcReadsCounter.WithLabelValues("ok").Inc()
	c.state = s
	c.synced = true
	c.grid = face.Render(s.Hour, s.Minute)
	c.l.Printf("started at %v: %s", s, face.Phrase(s.Hour, s.Minute))
	return nil
}

// State returns the time the clock is showing.
func (c *Clock) State() State { return c.state }

// Grid returns the current frame, which may be part of an hour change animation.
func (c *Clock) Grid() face.Grid { return c.grid }

// Animating returns whether an hour change animation is running.
func (c *Clock) Animating() bool { return c.anim.Active() }

// Step runs one tick of the loop: handle the buttons, resync if it's time, advance any animation,
// and refresh the display.
func (c *Clock) Step() {
	up, down := c.in.Pressed()
	switch ev := c.buttons.Sample(up, down); ev {
	case Increment:
		c.adjust(c.state.Increment(), ev)
	case Decrement:
		c.adjust(c.state.Decrement(), ev)
	}

	c.sinceSync++
	if c.sinceSync >= c.cfg.Resync {
		c.sinceSync = 0
		c.resync()
	}

	if c.anim.Active() {
		c.anim.Advance(&c.grid)
		if !c.anim.Active() {
			c.render()
		}
	}

	c.out.Refresh(c.grid)
}

// Run steps the clock until the context is cancelled.
func (c *Clock) Run(ctx context.Context) error {
	defer c.l.Finish()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("clock loop: %w", ctx.Err())
		default:
		}
		c.Step()
	}
}

func (c *Clock) render() {
	c.grid = face.Render(c.state.Hour, c.state.Minute)
}

// adjust moves the clock to s and saves it to the time source.  A failed write leaves the clock
// showing s anyway; the next resync will put it back if the write really didn't happen.
func (c *Clock) adjust(s State, ev Event) {
	adjustmentsCounter.WithLabelValues(ev.String()).Inc()
	c.l.Printf("%v: %v -> %v", ev, c.state, s)
	c.state = s
	c.anim.Stop()
	c.render()
	if err := c.src.WriteTime(s.Hour, s.Minute); err != nil {
		rtcWriteErrorsCounter.Inc()
		c.l.Errorf("write %v: %v", s, err)
	}
}

// resync reads the time source.  A new hour starts the transition animation, which scrolls the old
// words away before the new time is rendered; otherwise the grid is rendered straight away.  Failed
// or nonsensical reads leave the old time in place.
func (c *Clock) resync() {
	h, m, err := c.src.ReadTime()
	if err != nil {
		rtcReadsCounter.WithLabelValues("error").Inc()
		c.l.Errorf("read: %v", err)
		return
	}
	s := State{Hour: h, Minute: m}
	if !s.Valid() {
		rtcReadsCounter.WithLabelValues("invalid").Inc()
		c.l.Errorf("read: invalid time %v", s)
		return
	}
	rtcReadsCounter.WithLabelValues("ok").Inc()

	prev := c.state
	c.state = s
	if !c.synced {
		// The placeholder midnight shown after a failed start is not an hour to animate away from.
		c.synced = true
		c.l.Printf("first good read %v: %s", s, face.Phrase(s.Hour, s.Minute))
		c.anim.Stop()
		c.render()
		return
	}
	if s.Hour != prev.Hour {
		hourTransitionsCounter.Inc()
		c.l.Printf("hour changed %v -> %v: %s", prev, s, face.Phrase(s.Hour, s.Minute))
		c.anim.Start()
		if c.HourChanged != nil {
			c.HourChanged(s.Hour)
		}
		return
	}
	if c.anim.Active() {
		c.anim.Stop()
	}
	c.render()
}

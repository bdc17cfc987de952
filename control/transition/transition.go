// Package transition animates the face when the hour changes: the current words scroll down off
// the bottom of the face while a sweep pattern is fed in at the top.
package transition

import "github.com/jrockway/beaglebone-word-clock/control/face"

const (
	DefaultEvery = 7
	DefaultSteps = 14

	// sweep is the pattern fed into the top row.  It is rotated one column to the right on every
	// step.
	sweep face.Row = 0b01010111010
)

// Animator scrolls a grid for a fixed number of steps.  The zero value is idle; call Start to begin
// an animation.
type Animator struct {
	// Every is the number of Advance calls between scroll steps.
	Every int
	// Steps is the number of scroll steps in one animation.
	Steps int

	active bool
	ticks  int
	steps  int
}

// New returns an idle Animator.  Non-positive arguments select the defaults.
func New(every, steps int) *Animator {
	if every <= 0 {
		every = DefaultEvery
	}
	if steps <= 0 {
		steps = DefaultSteps
	}
	return &Animator{Every: every, Steps: steps}
}

// Start begins a new animation, abandoning any animation in progress.
func (a *Animator) Start() {
	a.active = true
	a.ticks = 0
	a.steps = 0
}

// Stop ends the animation.
func (a *Animator) Stop() {
	a.active = false
	a.ticks = 0
	a.steps = 0
}

// Active returns whether an animation is in progress.
func (a *Animator) Active() bool { return a.active }

// Advance is called once per loop tick.  While an animation is active it scrolls g by one row
// every Every ticks, and returns true if g changed.  The animation stops by itself after Steps
// scrolls.
func (a *Animator) Advance(g *face.Grid) bool {
	if !a.active {
		return false
	}
	every := a.Every
	if every <= 0 {
		every = 1
	}
	t := a.ticks
	a.ticks++
	if t%every != 0 {
		return false
	}

	copy(g[1:], g[:face.Rows-1])
	g[0] = Pattern(a.steps)
	a.steps++
	if a.steps >= a.Steps {
		a.active = false
	}
	return true
}

// Pattern returns the top row for the given step of the sweep.
func Pattern(step int) face.Row {
	n := uint(((step % face.Cols) + face.Cols) % face.Cols)
	return (sweep<<n | sweep>>(face.Cols-n)) & face.RowMask
}

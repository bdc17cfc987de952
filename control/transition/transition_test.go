package transition

import (
	"testing"

	"github.com/jrockway/beaglebone-word-clock/control/face"
)

func TestScroll(t *testing.T) {
	a := New(3, 4)
	g := face.Render(15, 0)
	start := g
	a.Start()

	// The first tick scrolls immediately.
	if !a.Advance(&g) {
		t.Fatal("first advance did not scroll")
	}
	for i := 1; i < face.Rows; i++ {
		if got, want := g[i], start[i-1]; got != want {
			t.Errorf("row %d after one step:\n  got: %v\n want: %v", i, got, want)
		}
	}
	if got, want := g[0], Pattern(0); got != want {
		t.Errorf("top row after one step:\n  got: %v\n want: %v", got, want)
	}

	// Then every third tick.
	for i := 0; i < 2; i++ {
		if a.Advance(&g) {
			t.Errorf("tick %d scrolled", i+1)
		}
	}
	if !a.Advance(&g) {
		t.Error("third tick did not scroll")
	}
	if got, want := g[1], Pattern(0); got != want {
		t.Errorf("previous pattern did not move down:\n  got: %v\n want: %v", got, want)
	}
}

func TestTerminates(t *testing.T) {
	a := New(DefaultEvery, DefaultSteps)
	g := face.Render(9, 0)
	a.Start()
	var scrolls, ticks int
	for a.Active() {
		if a.Advance(&g) {
			scrolls++
		}
		ticks++
		if ticks > 10000 {
			t.Fatal("animation did not terminate")
		}
	}
	if got, want := scrolls, DefaultSteps; got != want {
		t.Errorf("scroll steps:\n  got: %v\n want: %v", got, want)
	}
	before := g
	if a.Advance(&g) || g != before {
		t.Error("idle animator changed the grid")
	}

	// Once finished, a fresh render replaces every row.
	g = face.Render(10, 0)
	if got, want := g, face.Render(10, 0); got != want {
		t.Errorf("static render after animation:\n  got:\n%v\n want:\n%v", got.String(), want.String())
	}
}

func TestRestart(t *testing.T) {
	a := New(1, 2)
	var g face.Grid
	a.Start()
	a.Advance(&g)
	a.Start()
	a.Advance(&g)
	if !a.Active() {
		t.Error("restarted animation ended early")
	}
	a.Advance(&g)
	if a.Active() {
		t.Error("animation still active after its steps")
	}
	a.Start()
	a.Stop()
	if a.Active() || a.Advance(&g) {
		t.Error("stopped animation still running")
	}
}

func TestPattern(t *testing.T) {
	for step := 0; step < 3*face.Cols; step++ {
		p := Pattern(step)
		if p&^face.RowMask != 0 {
			t.Errorf("step %d: pattern %#x has bits outside the row", step, p)
		}
		if got, want := p.Count(), sweep.Count(); got != want {
			t.Errorf("step %d: lit lamps:\n  got: %v\n want: %v", step, got, want)
		}
		// Each step moves the pattern one column to the right.
		if got, want := Pattern(step+1), (p<<1|p>>(face.Cols-1))&face.RowMask; got != want {
			t.Errorf("step %d: next pattern:\n  got: %v\n want: %v", step, got, want)
		}
	}
}

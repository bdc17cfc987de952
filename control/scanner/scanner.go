// Package scanner multiplexes a face.Grid onto the lamp matrix.
//
// The matrix is wired to a chain of shift registers: 9 row-select outputs followed by 11
// column-enable outputs.  Only one row is energized at a time; Refresh selects each lit row in
// turn, holds it for a short dwell, and moves on.  Called in a loop, every lit row appears to be on
// at once.
package scanner

import (
	"time"

	"github.com/jrockway/beaglebone-word-clock/control/face"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"periph.io/x/conn/v3/gpio"
)

const (
	SelectBits = face.Rows
	ColumnBits = face.Cols
	FrameBits  = SelectBits + ColumnBits

	// DefaultDwell is how long each row stays lit.  A full face is 9 rows, so this gives about 55
	// refreshes per second.
	DefaultDwell = 2 * time.Millisecond
)

var (
	scanCyclesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_scan_cycles_total",
		Help: "number of times the whole grid has been scanned out to the lamps",
	})
	rowsScannedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_rows_scanned_total",
		Help: "number of rows latched onto the lamps",
	})
	litLampsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordclock_lit_lamps",
		Help: "number of lamps lit in the most recently scanned grid",
	})
	shiftErrorsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_shift_register_errors_total",
		Help: "number of pin or bus writes to the shift register chain that failed",
	})
)

// Register is a chain of serial-in, parallel-out shift registers with a storage latch, like
// daisy-chained 74HC595s.  There is no way to read anything back from the chain, so neither method
// reports errors.
type Register interface {
	// Shift clocks bits into the chain, first element first.
	Shift(bits []gpio.Level)
	// Latch copies the shift stage to the outputs.
	Latch()
}

// Frame returns the bits that light row on the matrix: a one-hot row select, then the row's
// columns, column 0 first.  This order matches how the board is wired and must not change.
func Frame(row int, r face.Row) [FrameBits]gpio.Level {
	var f [FrameBits]gpio.Level
	for j := 0; j < SelectBits; j++ {
		f[j] = gpio.Level(j == row)
	}
	for j := 0; j < ColumnBits; j++ {
		f[SelectBits+j] = gpio.Level(r.Lit(j))
	}
	return f
}

// Scanner drives a Grid onto a Register.
type Scanner struct {
	reg   Register
	dwell time.Duration
	sleep func(time.Duration)
}

// New returns a Scanner that holds each row for dwell.  A zero dwell selects DefaultDwell.
func New(reg Register, dwell time.Duration) *Scanner {
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	return &Scanner{reg: reg, dwell: dwell, sleep: time.Sleep}
}

// Refresh scans g out to the lamps once and returns the number of rows it lit.  Empty rows are
// skipped entirely; latching one would flash whatever row select was left in the chain.
//
// Refresh blocks for one dwell per lit row, or one dwell if nothing is lit.
func (s *Scanner) Refresh(g face.Grid) int {
	var n int
	for i, r := range g {
		if r&face.RowMask == 0 {
			continue
		}
		f := Frame(i, r)
		s.reg.Shift(f[:])
		s.reg.Latch()
		s.sleep(s.dwell)
		n++
	}
	if n == 0 {
		s.sleep(s.dwell)
	}
	scanCyclesCounter.Inc()
	rowsScannedCounter.Add(float64(n))
	litLampsGauge.Set(float64(g.Lamps()))
	return n
}

// Clear latches an all-zero frame, deselecting every row.  Boards without an output enable line
// use this to go dark.
func (s *Scanner) Clear() {
	var f [FrameBits]gpio.Level
	s.reg.Shift(f[:])
	s.reg.Latch()
}

// out writes a level to a pin, counting failures.
func out(p gpio.PinOut, l gpio.Level) {
	if err := p.Out(l); err != nil {
		shiftErrorsCounter.Inc()
	}
}

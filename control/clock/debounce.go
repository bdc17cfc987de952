package clock

// Event is what the buttons asked for on one tick.
type Event int

const (
	None Event = iota
	Increment
	Decrement
)

func (e Event) String() string {
	switch e {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	default:
		return "none"
	}
}

// Debouncer turns raw button samples, taken once per tick, into adjustment events.  A button
// must be held for Threshold consecutive ticks to count.  Increment wins when both buttons are
// held; the decrement button does not accumulate hold time while the increment button is down.
//
// After an event fires nothing else fires until both buttons are released, unless Repeat is set,
// in which case a held button fires again every Threshold ticks.
type Debouncer struct {
	Threshold int
	Repeat    bool

	up, down int
	fired    bool
}

// Sample records one tick's worth of button state.
func (d *Debouncer) Sample(up, down bool) Event {
	if !up && !down {
		d.up, d.down, d.fired = 0, 0, false
		return None
	}
	if d.fired && !d.Repeat {
		return None
	}

	if up {
		d.up++
		d.down = 0
	} else {
		d.up = 0
		d.down++
	}

	threshold := d.Threshold
	if threshold < 1 {
		threshold = 1
	}
	switch {
	case d.up >= threshold:
		d.up, d.down, d.fired = 0, 0, true
		return Increment
	case d.down >= threshold:
		d.up, d.down, d.fired = 0, 0, true
		return Decrement
	}
	return None
}

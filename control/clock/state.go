package clock

import "fmt"

// State is the time the clock is showing.  It only changes through a resync from the time source
// or a button adjustment, and both keep it in range.
type State struct {
	Hour, Minute int
}

// Valid returns whether s is a time of day.
func (s State) Valid() bool {
	return s.Hour >= 0 && s.Hour < 24 && s.Minute >= 0 && s.Minute < 60
}

// Increment returns the next five minute boundary after s.
func (s State) Increment() State {
	if s.Minute > 54 {
		return State{Hour: (s.Hour + 1) % 24}
	}
	return State{Hour: s.Hour, Minute: (s.Minute/5 + 1) * 5}
}

// Decrement returns the five minute boundary before the one s is in, so 10:07 goes to 10:00 and
// 10:03 goes to 09:55.
func (s State) Decrement() State {
	if s.Minute < 5 {
		return State{Hour: (s.Hour + 23) % 24, Minute: 55}
	}
	return State{Hour: s.Hour, Minute: (s.Minute/5 - 1) * 5}
}

func (s State) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

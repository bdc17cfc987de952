package rtc

import (
	"fmt"
	"time"
)

// System keeps time with the host's clock.  Setting the time does not touch the host clock; it
// stores an offset from it instead, so a System is only as persistent as the process.
type System struct {
	offset time.Duration
	now    func() time.Time
}

// NewSystem returns a System that starts out showing the host's local time.
func NewSystem() *System {
	return &System{now: time.Now}
}

func (s *System) String() string { return "system clock" }

func (s *System) current() time.Time {
	return s.now().Add(s.offset).In(time.Local)
}

// ReadTime implements the clock's time source.
func (s *System) ReadTime() (int, int, error) {
	t := s.current()
	return t.Hour(), t.Minute(), nil
}

// WriteTime moves the clock to hour:minute:00 today.
func (s *System) WriteTime(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("write %02d:%02d: %w", hour, minute, ErrInvalidTime)
	}
	now := s.now().In(time.Local)
	cur := s.current()
	want := time.Date(cur.Year(), cur.Month(), cur.Day(), hour, minute, 0, 0, time.Local)
	s.offset = want.Sub(now)
	return nil
}

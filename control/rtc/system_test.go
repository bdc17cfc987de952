package rtc

import (
	"errors"
	"testing"
	"time"
)

func TestSystem(t *testing.T) {
	now := time.Date(2021, 9, 14, 10, 7, 30, 0, time.Local)
	s := &System{now: func() time.Time { return now }}

	h, m, err := s.ReadTime()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if h != 10 || m != 7 {
		t.Errorf("initial time:\n  got: %02d:%02d\n want: 10:07", h, m)
	}

	if err := s.WriteTime(23, 55); err != nil {
		t.Fatalf("write: %v", err)
	}
	h, m, _ = s.ReadTime()
	if h != 23 || m != 55 {
		t.Errorf("after write:\n  got: %02d:%02d\n want: 23:55", h, m)
	}

	// Time keeps moving from the new setting.
	now = now.Add(10 * time.Minute)
	h, m, _ = s.ReadTime()
	if h != 0 || m != 5 {
		t.Errorf("ten minutes later:\n  got: %02d:%02d\n want: 00:05", h, m)
	}

	if err := s.WriteTime(12, 60); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("write 12:60:\n  got: %v\n want: %v", err, ErrInvalidTime)
	}
}

// Package rtc provides the time sources the clock can keep time with: a DS1307 real-time clock on
// an I2C bus, and the host's own clock for running without one.
package rtc

import (
	"errors"
	"fmt"

	"github.com/jrockway/beaglebone-word-clock/control/bcd"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the DS1307's fixed bus address.
const DefaultAddr = 0x68

type Register uint8

const (
	RegisterSeconds Register = 0x00
	RegisterMinutes Register = 0x01
	RegisterHours   Register = 0x02
	RegisterControl Register = 0x07
)

const (
	mode12h = 0x40 // in RegisterHours
	pm      = 0x20 // in RegisterHours, 12 hour mode only
)

// ErrInvalidTime is returned when the time registers do not hold a time.
var ErrInvalidTime = errors.New("invalid time")

// DS1307 is a Maxim DS1307 real-time clock.  Only hours and minutes are used; the clock's date
// registers are left alone.
type DS1307 struct {
	dev i2c.Dev
}

// NewDS1307 returns a DS1307 at addr on bus.  Nothing is sent to the device.
func NewDS1307(bus i2c.Bus, addr uint16) *DS1307 {
	return &DS1307{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

func (d *DS1307) String() string {
	return fmt.Sprintf("ds1307 at %#x", d.dev.Addr)
}

// ReadRegisters reads len(out) consecutive registers starting at r.
func (d *DS1307) ReadRegisters(r Register, out []byte) error {
	if err := d.dev.Tx([]byte{byte(r)}, out); err != nil {
		return fmt.Errorf("tx: %w", err)
	}
	return nil
}

// WriteRegisters writes consecutive registers starting at r.
func (d *DS1307) WriteRegisters(r Register, data ...byte) error {
	w := make([]byte, 1, len(data)+1)
	w[0] = byte(r)
	w = append(w, data...)
	if err := d.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("tx: %w", err)
	}
	return nil
}

// ReadTime returns the hour (0-23) and minute stored in the clock.  A clock left in 12 hour mode
// is converted.  Register contents that are not BCD, or 12 hour mode hours outside 1-12, produce
// ErrInvalidTime; 24 hour values that are BCD but out of range (hour 25, say) are returned as-is
// for the caller to reject.
func (d *DS1307) ReadTime() (int, int, error) {
	var buf [3]byte
	if err := d.ReadRegisters(RegisterSeconds, buf[:]); err != nil {
		return 0, 0, fmt.Errorf("read time registers: %w", err)
	}
	m, hr := buf[RegisterMinutes]&0x7f, buf[RegisterHours]
	if hr&mode12h != 0 {
		h := hr & 0x1f
		if !bcd.Valid(m) || !bcd.Valid(h) {
			return 0, 0, fmt.Errorf("registers %x: %w", buf, ErrInvalidTime)
		}
		hour := bcd.Decode(h)
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("registers %x: 12 hour mode hour %d: %w", buf, hour, ErrInvalidTime)
		}
		hour %= 12
		if hr&pm != 0 {
			hour += 12
		}
		return hour, bcd.Decode(m), nil
	}
	h := hr & 0x3f
	if !bcd.Valid(m) || !bcd.Valid(h) {
		return 0, 0, fmt.Errorf("registers %x: %w", buf, ErrInvalidTime)
	}
	return bcd.Decode(h), bcd.Decode(m), nil
}

// WriteTime sets the clock to hour:minute:00 in 24 hour mode.  Zeroing the seconds register also
// clears the clock halt bit, which starts a clock that was stopped.
func (d *DS1307) WriteTime(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("write %02d:%02d: %w", hour, minute, ErrInvalidTime)
	}
	if err := d.WriteRegisters(RegisterSeconds, 0x00, bcd.Encode(minute), bcd.Encode(hour)); err != nil {
		return fmt.Errorf("write time registers: %w", err)
	}
	return nil
}

package scanner

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Pins bit-bangs the shift register chain over three GPIO lines.  The registers sample Data on
// the rising edge of Clock and copy the shift stage to the outputs on the rising edge of Strobe.
type Pins struct {
	Data, Clock, Strobe gpio.PinOut
}

// Shift implements Register.
func (p *Pins) Shift(bits []gpio.Level) {
	for _, b := range bits {
		out(p.Data, b)
		out(p.Clock, gpio.High)
		out(p.Clock, gpio.Low)
	}
}

// Latch implements Register.
func (p *Pins) Latch() {
	out(p.Strobe, gpio.High)
	out(p.Strobe, gpio.Low)
}

// SPI drives the chain from an SPI port: MOSI is the data line and SCLK the shift clock.  Strobe,
// the latch line, is still a plain GPIO.  SPI transfers whole bytes, so bits are buffered until
// Latch and padded at the front to a multiple of 8; the padding falls off the far end of the chain
// (or into its unused outputs), leaving the real bits where a bit-banged shift would have put them.
type SPI struct {
	Conn   spi.Conn
	Strobe gpio.PinOut

	pending []gpio.Level
}

// DefaultSPIFrequency is well under what a 74HC595 chain can take with short wires.
const DefaultSPIFrequency = 1 * physic.MegaHertz

// OpenSPI connects to the chain over port.  A zero frequency selects DefaultSPIFrequency.
func OpenSPI(port spi.Port, f physic.Frequency, latch gpio.PinOut) (*SPI, error) {
	if f == 0 {
		f = DefaultSPIFrequency
	}
	c, err := port.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("connect to spi port: %w", err)
	}
	return &SPI{Conn: c, Strobe: latch}, nil
}

// Shift implements Register.
func (s *SPI) Shift(bits []gpio.Level) {
	s.pending = append(s.pending, bits...)
}

// Latch implements Register.
func (s *SPI) Latch() {
	w := Pack(s.pending)
	s.pending = s.pending[:0]
	if err := s.Conn.Tx(w, nil); err != nil {
		shiftErrorsCounter.Inc()
	}
	out(s.Strobe, gpio.High)
	out(s.Strobe, gpio.Low)
}

// Pack packs bits into bytes, most significant bit first, with zero padding in front of the first
// bit so that the last bit is the least significant bit of the last byte.
func Pack(bits []gpio.Level) []byte {
	pad := (8 - len(bits)%8) % 8
	result := make([]byte, (len(bits)+pad)/8)
	for i, b := range bits {
		if !b {
			continue
		}
		pos := pad + i
		result[pos/8] |= 0x80 >> uint(pos%8)
	}
	return result
}

// Output controls the chain's active-low output enable and master reset lines.  Either may be nil
// if the board ties it off.
type Output struct {
	Enable gpio.PinOut
	Reset  gpio.PinOut
}

// Start clears the chain and turns the outputs on.
func (o *Output) Start() error {
	if o.Reset != nil {
		if err := o.Reset.Out(gpio.Low); err != nil {
			return fmt.Errorf("assert reset: %w", err)
		}
		if err := o.Reset.Out(gpio.High); err != nil {
			return fmt.Errorf("release reset: %w", err)
		}
	}
	if o.Enable != nil {
		if err := o.Enable.Out(gpio.Low); err != nil {
			return fmt.Errorf("enable outputs: %w", err)
		}
	}
	return nil
}

// Blank turns the outputs off, so nothing is lit while the program is not running.
func (o *Output) Blank() error {
	if o.Enable == nil {
		return nil
	}
	if err := o.Enable.Out(gpio.High); err != nil {
		return fmt.Errorf("disable outputs: %w", err)
	}
	return nil
}

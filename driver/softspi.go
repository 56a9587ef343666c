package driver

import (
	"errors"
)

// SoftSPI is a write-only mode-0 bit-bang implementation of the SPI bus for
// hosts without an SPI master: data changes while the clock is low and is
// sampled on the rising edge. Reads return zero; the peripheral has no
// return path.
type SoftSPI struct {
	SCK OutputPin
	SDO OutputPin

	// Delay, when set, is called between clock transitions and paces the
	// bus at two calls per bit.
	Delay func()
}

// Configure checks the pins and parks clock and data low.
func (s *SoftSPI) Configure() error {
	if s.SCK == nil || s.SDO == nil {
		return errors.New("clock and data pins are required")
	}
	s.SCK(false)
	s.SDO(false)
	return nil
}

// Tx shifts w out MSB first. The r slice is ignored and no error is ever
// returned.
func (s *SoftSPI) Tx(w, r []byte) error {
	for _, b := range w {
		s.transfer(b)
	}
	return nil
}

// Transfer shifts one byte out and returns zero.
func (s *SoftSPI) Transfer(b byte) (byte, error) {
	s.transfer(b)
	return 0, nil
}

func (s *SoftSPI) transfer(b byte) {
	for i := 7; i >= 0; i-- {
		s.SDO(b&(1<<uint(i)) != 0)
		s.delay()
		s.SCK(true)
		s.delay()
		s.SCK(false)
	}
}

func (s *SoftSPI) delay() {
	if s.Delay != nil {
		s.Delay()
	}
}

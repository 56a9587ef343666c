package protocol

import "fmt"

// LineState packs the raw bus lines as driven during one step. It is also
// the byte format line-driver adapters consume, one byte per step:
//
//	bit 0 serial clock
//	bit 1 serial data
//	bit 2 chip select, active low (bit set = deselected)
type LineState uint8

const (
	LineClock   LineState = 1 << 0
	LineData    LineState = 1 << 1
	LineSelectN LineState = 1 << 2

	// LineMask covers the defined line bits; anything above is ignored.
	LineMask = LineClock | LineData | LineSelectN

	// LineIdle is the bus at rest: deselected, clock and data low.
	LineIdle = LineSelectN
)

// MakeLineState assembles a line state from individual levels. selectN is
// the raw select line level (true = deselected).
func MakeLineState(clock, data, selectN bool) LineState {
	var s LineState
	if clock {
		s |= LineClock
	}
	if data {
		s |= LineData
	}
	if selectN {
		s |= LineSelectN
	}
	return s
}

// Clock returns the serial clock level.
func (s LineState) Clock() bool { return s&LineClock != 0 }

// Data returns the serial data level.
func (s LineState) Data() bool { return s&LineData != 0 }

// SelectN returns the raw select line level (true = deselected).
func (s LineState) SelectN() bool { return s&LineSelectN != 0 }

// WithClock returns s with the clock line set to level.
func (s LineState) WithClock(level bool) LineState { return s.with(LineClock, level) }

// WithData returns s with the data line set to level.
func (s LineState) WithData(level bool) LineState { return s.with(LineData, level) }

// WithSelectN returns s with the raw select line set to level.
func (s LineState) WithSelectN(level bool) LineState { return s.with(LineSelectN, level) }

func (s LineState) with(bit LineState, level bool) LineState {
	if level {
		return s | bit
	}
	return s &^ bit
}

func (s LineState) String() string {
	return fmt.Sprintf("clk=%d dat=%d seln=%d", b2i(s.Clock()), b2i(s.Data()), b2i(s.SelectN()))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

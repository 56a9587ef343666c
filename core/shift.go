package core

import "gopwm/protocol"

// FrameAccumulator serializes incoming data bits into 16-bit command frames.
// A bit is accepted only on ticks where the device is selected and a
// serial-clock edge pulse is present; the first bit received ends at the
// frame's most significant position. Deselecting mid-frame gates
// accumulation without discarding the partial frame: buffer and position
// counter persist until clock edges resume or reset clears them.
type FrameAccumulator struct {
	buf   protocol.Frame
	count uint8 // bit position within the frame, wraps at 16
	ready bool
}

// Advance processes one tick and returns the registered frame and ready
// values as of the start of the tick. Ready is set when a frame's 16th bit
// is accepted and holds until the next accepted bit, so consumers must
// treat it edge-triggered.
func (a *FrameAccumulator) Advance(dataBit, clockPulse, selected, reset bool) (protocol.Frame, bool) {
	if reset {
		a.buf, a.count, a.ready = 0, 0, false
		return 0, false
	}
	frame, ready := a.buf, a.ready
	if selected && clockPulse {
		a.buf <<= 1
		if dataBit {
			a.buf |= 1
		}
		a.ready = a.count == protocol.FrameBits-1
		a.count = (a.count + 1) & 0x0F
	}
	return frame, ready
}

// Frame returns the shift buffer as of the end of the last tick. When Ready
// reports true this is the completed frame.
func (a *FrameAccumulator) Frame() protocol.Frame { return a.buf }

// Ready reports whether the last accepted bit completed a frame. Event-driven
// callers that advance the accumulator once per clock edge read this instead
// of the Advance return, which lags by one call.
func (a *FrameAccumulator) Ready() bool { return a.ready }

// BitCount returns the position the next accepted bit will take within the
// current frame.
func (a *FrameAccumulator) BitCount() uint8 { return a.count }

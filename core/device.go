package core

import "gopwm/protocol"

// Device assembles the whole peripheral: line synchronizers, clock edge
// detector, frame accumulator, ready edge detector, register file, PWM
// source and output gating, advanced together one system tick at a time.
//
// Ordering inside a tick matters. The PWM and output-gating consumers run
// first against the register state settled at the end of the previous tick,
// then the bus pipeline advances and the decoder commits. A frame whose
// final bit pulses during tick t is therefore committed during tick t+1 and
// visible to consumers from tick t+2 on.
type Device struct {
	lines     *VectorSynchronizer
	clockEdge EdgeDetector
	acc       FrameAccumulator
	readyEdge EdgeDetector
	regs      RegisterFile
	pwm       PWMGenerator

	outLow     uint8
	outHigh    uint8
	readyPulse bool
	ticks      uint64
}

// NewDevice builds a device with the default synchronizer depth.
func NewDevice() *Device {
	return NewDeviceWithSyncDepth(DefaultSyncDepth)
}

// NewDeviceWithSyncDepth builds a device with the given synchronizer depth.
// Panics if depth is below MinSyncDepth.
func NewDeviceWithSyncDepth(depth int) *Device {
	return &Device{lines: NewVectorSynchronizer(depth)}
}

// Tick advances the device by one system tick with the given raw bus lines.
// While reset is held the outputs are forced low and every pipeline stage
// clears.
func (d *Device) Tick(line protocol.LineState, reset bool) {
	level := d.pwm.Advance(d.regs.Duty(), reset)
	d.outLow, d.outHigh = GateOutputs(d.regs.EnableOut(), d.regs.EnablePWM(), level)
	if reset {
		d.outLow, d.outHigh = 0, 0
	}

	synced := protocol.LineState(d.lines.Advance(uint8(line), reset))
	clockPulse := d.clockEdge.Advance(synced.Clock(), reset)
	frame, ready := d.acc.Advance(synced.Data(), clockPulse, !synced.SelectN(), reset)
	d.readyPulse = d.readyEdge.Advance(ready, reset)
	d.regs.Advance(frame, d.readyPulse, reset)
	if d.readyPulse {
		RecordDecode(frame)
	}
	d.ticks++
}

// Play advances the device through every step of a waveform.
func (d *Device) Play(wave protocol.Waveform) {
	for _, line := range wave {
		d.Tick(line, false)
	}
}

// Reset runs one tick with reset asserted and idle bus lines.
func (d *Device) Reset() {
	d.Tick(protocol.LineIdle, true)
}

// Outputs returns the channel output bytes driven during the last tick,
// channels 0-7 in low and 8-15 in high.
func (d *Device) Outputs() (low, high uint8) {
	return d.outLow, d.outHigh
}

// Registers exposes the decoded register file.
func (d *Device) Registers() *RegisterFile {
	return &d.regs
}

// ReadyPulse reports whether the last tick committed a frame.
func (d *Device) ReadyPulse() bool { return d.readyPulse }

// Ready reports the accumulator's held frame-complete level.
func (d *Device) Ready() bool { return d.acc.Ready() }

// PendingBits returns the bit position the next accepted bit will fill.
func (d *Device) PendingBits() uint8 { return d.acc.BitCount() }

// SyncDepth returns the line synchronizer depth.
func (d *Device) SyncDepth() int { return d.lines.Depth() }

// Ticks returns the number of ticks advanced since construction.
func (d *Device) Ticks() uint64 { return d.ticks }

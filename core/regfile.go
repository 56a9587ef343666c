package core

import "gopwm/protocol"

// RegisterFile is the decode target: five 8-bit configuration registers
// written by confirmed command frames and read by the PWM and output-gating
// consumers. Reset forces every register to zero.
type RegisterFile struct {
	regs [protocol.RegCount]uint8
}

// Advance applies one tick of the command decoder. On a write pulse with the
// frame's write flag set, the addressed register takes the frame's data
// byte; unmapped addresses are ignored without any signal. Frames with the
// write flag clear are decoded but have no effect: the bus defines no read
// path, so read intent is a known no-op rather than something to answer.
func (r *RegisterFile) Advance(frame protocol.Frame, writePulse, reset bool) {
	if reset {
		r.regs = [protocol.RegCount]uint8{}
		return
	}
	if !writePulse || !frame.Write() {
		return
	}
	if addr := frame.Address(); int(addr) < len(r.regs) {
		r.regs[addr] = frame.Data()
	}
}

// Get returns the register at addr; ok is false for unmapped addresses.
func (r *RegisterFile) Get(addr uint8) (uint8, bool) {
	if int(addr) >= len(r.regs) {
		return 0, false
	}
	return r.regs[addr], true
}

// Snapshot returns all registers in address order.
func (r *RegisterFile) Snapshot() [protocol.RegCount]uint8 {
	return r.regs
}

// EnableOut returns the 16-channel output-enable mask assembled from the
// low/high register pair.
func (r *RegisterFile) EnableOut() uint16 {
	return uint16(r.regs[protocol.RegEnableOutHigh])<<8 | uint16(r.regs[protocol.RegEnableOutLow])
}

// EnablePWM returns the 16-channel PWM-select mask assembled from the
// low/high register pair.
func (r *RegisterFile) EnablePWM() uint16 {
	return uint16(r.regs[protocol.RegEnablePWMHigh])<<8 | uint16(r.regs[protocol.RegEnablePWMLow])
}

// Duty returns the shared PWM duty-cycle register.
func (r *RegisterFile) Duty() uint8 {
	return r.regs[protocol.RegPWMDuty]
}

//go:build rp2040 || rp2350

package main

import (
	"device/rp"
	"machine"
)

// outputPins maps output channels 0-15 to GPIO6-GPIO21. Adjacent pin pairs
// share a PWM slice, so the block covers all eight slices exactly twice and
// every channel can also run hardware PWM.
var outputPins = [16]machine.Pin{
	machine.GPIO6, machine.GPIO7, machine.GPIO8, machine.GPIO9,
	machine.GPIO10, machine.GPIO11, machine.GPIO12, machine.GPIO13,
	machine.GPIO14, machine.GPIO15, machine.GPIO16, machine.GPIO17,
	machine.GPIO18, machine.GPIO19, machine.GPIO20, machine.GPIO21,
}

// RPPortDriver implements the PortDriver interface for the RP2040.
// Levels are applied through the SIO set/clear registers so every channel
// in a mask changes in the same cycle.
type RPPortDriver struct {
	// Channels currently muxed to SIO. Channels handed to the PWM
	// peripheral leave this set and are reclaimed on their next
	// masked write.
	owned uint16
}

// NewRPPortDriver creates a new RP2040 port driver
func NewRPPortDriver() *RPPortDriver {
	return &RPPortDriver{}
}

// Configure claims every output channel for SIO and drives it low.
func (d *RPPortDriver) Configure() error {
	for _, pin := range outputPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
	d.owned = 0xFFFF
	return nil
}

// Write drives the masked channels to the given levels. Channels outside
// the mask belong to the PWM peripheral and are left alone; channels
// re-entering the mask are muxed back from PWM to SIO first.
func (d *RPPortDriver) Write(value, mask uint16) {
	reclaim := mask &^ d.owned
	d.owned = mask

	for ch := 0; ch < len(outputPins); ch++ {
		if reclaim&(1<<ch) != 0 {
			outputPins[ch].Configure(machine.PinConfig{Mode: machine.PinOutput})
		}
	}

	// Accumulate pin masks so each level change is a single register write
	var setMask, clearMask uint32
	for ch := 0; ch < len(outputPins); ch++ {
		if mask&(1<<ch) == 0 {
			continue
		}
		pinMask := uint32(1) << outputPins[ch]
		if value&(1<<ch) != 0 {
			setMask |= pinMask
		} else {
			clearMask |= pinMask
		}
	}

	if setMask != 0 {
		rp.SIO.GPIO_OUT_SET.Set(setMask)
	}
	if clearMask != 0 {
		rp.SIO.GPIO_OUT_CLR.Set(clearMask)
	}
}

// Package sim hosts the device model behind the bridge interface, so
// controllers and tools run against the same decode pipeline the hardware
// implements without any hardware attached.
package sim

import (
	"gopwm/core"
	"gopwm/protocol"
)

// DefaultStepTicks is how many device ticks each waveform step is held.
// Four ticks per step keeps every step comfortably longer than the default
// synchronizer depth.
const DefaultStepTicks = 4

// Bridge plays waveforms into an in-process device model.
type Bridge struct {
	dev       *core.Device
	stepTicks int
}

// NewBridge builds a bridge around a freshly reset device model.
func NewBridge() *Bridge {
	b := &Bridge{
		dev:       core.NewDevice(),
		stepTicks: DefaultStepTicks,
	}
	b.dev.Reset()
	return b
}

// SetStepTicks changes how long each waveform step is held. Values below 1
// are ignored.
func (b *Bridge) SetStepTicks(n int) {
	if n >= 1 {
		b.stepTicks = n
	}
}

// Play drives the waveform into the model, holding every step for the
// configured tick count.
func (b *Bridge) Play(wave protocol.Waveform) error {
	for _, line := range wave {
		for i := 0; i < b.stepTicks; i++ {
			b.dev.Tick(line, false)
		}
	}
	return nil
}

// Close releases nothing; it exists to satisfy the bridge interface.
func (b *Bridge) Close() error {
	return nil
}

// Device exposes the model for inspection.
func (b *Bridge) Device() *core.Device {
	return b.dev
}

// Idle advances the model n ticks with the bus at rest, for watching the
// PWM and outputs between transactions.
func (b *Bridge) Idle(n int) {
	for i := 0; i < n; i++ {
		b.dev.Tick(protocol.LineIdle, false)
	}
}

// Reset pulses the model's reset line.
func (b *Bridge) Reset() {
	b.dev.Reset()
}

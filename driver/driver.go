// Package driver is the controller-side driver for the bus peripheral in
// the style of the TinyGo driver collection: it mounts on any drivers.SPI
// bus plus a chip-select pin, so the same code runs from a microcontroller
// SPI master or the bit-banged fallback.
package driver

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"

	"gopwm/protocol"
)

// OutputPin drives one digital output level.
type OutputPin func(level bool)

// Device wraps an SPI bus wired to the peripheral. The peripheral shifts
// 16-bit frames MSB first on rising clock edges while chip select is held
// low, which is SPI mode 0 with 2-byte transfers.
type Device struct {
	bus drivers.SPI
	cs  OutputPin
}

// New creates a device on the given bus. The driver owns the chip-select
// pin from Configure on.
func New(bus drivers.SPI, cs OutputPin) *Device {
	return &Device{bus: bus, cs: cs}
}

// Configure parks the chip select deselected.
func (d *Device) Configure() error {
	if d.cs == nil {
		return errors.New("chip select pin is required")
	}
	d.cs(true)
	return nil
}

// WriteFrame shifts one frame with chip select held low for exactly the two
// frame bytes.
func (d *Device) WriteFrame(f protocol.Frame) error {
	buf := [2]byte{uint8(f >> 8), uint8(f)}
	d.cs(false)
	err := d.bus.Tx(buf[:], nil)
	d.cs(true)
	if err != nil {
		return fmt.Errorf("failed to shift frame: %w", err)
	}
	return nil
}

// WriteRegister writes value to the register at addr.
func (d *Device) WriteRegister(addr, value uint8) error {
	return d.WriteFrame(protocol.MakeFrame(true, addr, value))
}

// SetOutputEnables writes the 16-channel output-enable mask, low byte
// first.
func (d *Device) SetOutputEnables(mask uint16) error {
	if err := d.WriteRegister(protocol.RegEnableOutLow, uint8(mask)); err != nil {
		return err
	}
	return d.WriteRegister(protocol.RegEnableOutHigh, uint8(mask>>8))
}

// SetPWMEnables writes the 16-channel PWM-select mask, low byte first.
func (d *Device) SetPWMEnables(mask uint16) error {
	if err := d.WriteRegister(protocol.RegEnablePWMLow, uint8(mask)); err != nil {
		return err
	}
	return d.WriteRegister(protocol.RegEnablePWMHigh, uint8(mask>>8))
}

// SetDutyCycle writes the shared PWM duty register.
func (d *Device) SetDutyCycle(value uint8) error {
	return d.WriteRegister(protocol.RegPWMDuty, value)
}

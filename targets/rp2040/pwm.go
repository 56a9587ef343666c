//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// PWM_MAX is the full-scale 8-bit duty value
const PWM_MAX = 255

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RPPWMDriver implements the PWMDriver interface for the RP2040.
// Leverages the 8 hardware PWM slices with 2 channels each; the
// GPIO6-GPIO21 output block touches every slice exactly twice.
type RPPWMDriver struct {
	// Shared period in nanoseconds, applied to each slice the first
	// time one of its channels is enabled
	period uint64

	// Configured PWM slices
	// Key: slice number (0-7), Value: PWM peripheral
	peripherals map[uint8]pwmPeripheral

	// Hardware channel (A/B) per output, indexed by channel number
	channels [16]uint8

	enabled uint16
	duty    uint8
}

// NewRPPWMDriver creates a new RP2040 PWM driver
func NewRPPWMDriver() *RPPWMDriver {
	return &RPPWMDriver{
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// Configure stores the shared PWM period. Slices are brought up lazily
// because a slice claims its pins from SIO when configured.
func (d *RPPWMDriver) Configure(periodNS uint64) error {
	d.period = periodNS
	return nil
}

// SetDuty applies an 8-bit duty value to every enabled channel.
func (d *RPPWMDriver) SetDuty(value uint8) error {
	d.duty = value
	for ch := 0; ch < len(outputPins); ch++ {
		if d.enabled&(1<<ch) == 0 {
			continue
		}
		pwm := d.peripherals[pwmSliceFor(outputPins[ch])]
		pwm.Set(d.channels[ch], dutyValue(value, pwm.Top()))
	}
	return nil
}

// Enable hands the masked channels to their PWM slices at the current
// duty value. Channels leaving the mask are not touched here: the port
// driver reclaims their pins on its next masked write.
func (d *RPPWMDriver) Enable(mask uint16) error {
	adding := mask &^ d.enabled
	d.enabled = mask

	for ch := 0; ch < len(outputPins); ch++ {
		if adding&(1<<ch) == 0 {
			continue
		}
		pin := outputPins[ch]

		pwm, err := d.slicePeripheral(pwmSliceFor(pin))
		if err != nil {
			return err
		}

		// Channel muxes the pin to the PWM function
		channel, err := pwm.Channel(pin)
		if err != nil {
			return err
		}
		d.channels[ch] = channel
		pwm.Set(channel, dutyValue(d.duty, pwm.Top()))
	}
	return nil
}

// slicePeripheral returns the peripheral for a slice, configuring it with
// the shared period on first use.
func (d *RPPWMDriver) slicePeripheral(sliceNum uint8) (pwmPeripheral, error) {
	if pwm, exists := d.peripherals[sliceNum]; exists {
		return pwm, nil
	}
	pwm := getPWMPeripheral(sliceNum)
	err := pwm.Configure(machine.PWMConfig{
		Period: d.period,
	})
	if err != nil {
		return nil, err
	}
	d.peripherals[sliceNum] = pwm
	return pwm, nil
}

// dutyValue converts an 8-bit duty to a hardware compare level.
// Full scale lands on Top exactly, so 0xFF is as close to constant-high
// as the slice can produce.
func dutyValue(value uint8, top uint32) uint32 {
	return (uint32(value) * top) / PWM_MAX
}

// pwmSliceFor maps a GPIO pin to its PWM slice
// RP2040: GPIO pin N maps to:
//
//	Slice:   (N >> 1) & 0x7
//	Channel: N & 1  (even=A, odd=B)
func pwmSliceFor(pin machine.Pin) uint8 {
	return uint8((pin >> 1) & 0x7)
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
// Returns a pwmPeripheral interface that wraps TinyGo's unexported *pwmGroup type
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		// Unreachable with the 3-bit slice mask
		return machine.PWM0
	}
}

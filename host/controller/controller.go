// Package controller turns register writes into bus waveforms and plays
// them through a bridge.
package controller

import (
	"fmt"

	"github.com/golang/glog"

	"gopwm/protocol"
)

// Bridge is anything that can drive a waveform onto the bus: the in-process
// simulator, a serial line-driver adapter, or memory-mapped GPIO.
type Bridge interface {
	Play(protocol.Waveform) error
	Close() error
}

// Controller builds one transaction per register write.
type Controller struct {
	bridge Bridge
	cfg    protocol.WaveConfig
}

// New wraps a bridge with the default waveform shape.
func New(bridge Bridge) *Controller {
	return NewWithWaveConfig(bridge, protocol.DefaultWaveConfig())
}

// NewWithWaveConfig wraps a bridge with a custom waveform shape, for slow
// sinks that need longer half periods or lead-in.
func NewWithWaveConfig(bridge Bridge, cfg protocol.WaveConfig) *Controller {
	return &Controller{bridge: bridge, cfg: cfg}
}

// WriteFrame plays one frame as a complete select-framed transaction.
func (c *Controller) WriteFrame(f protocol.Frame) error {
	glog.V(2).Infof("play %v", f)
	if err := c.bridge.Play(protocol.BuildTransaction(f, c.cfg)); err != nil {
		return fmt.Errorf("failed to play frame %v: %w", f, err)
	}
	return nil
}

// WriteRegister writes value to the register at addr.
func (c *Controller) WriteRegister(addr, value uint8) error {
	return c.WriteFrame(protocol.MakeFrame(true, addr, value))
}

// SetOutputEnables writes the 16-channel output-enable mask, low byte
// first.
func (c *Controller) SetOutputEnables(mask uint16) error {
	if err := c.WriteRegister(protocol.RegEnableOutLow, uint8(mask)); err != nil {
		return err
	}
	return c.WriteRegister(protocol.RegEnableOutHigh, uint8(mask>>8))
}

// SetPWMEnables writes the 16-channel PWM-select mask, low byte first.
func (c *Controller) SetPWMEnables(mask uint16) error {
	if err := c.WriteRegister(protocol.RegEnablePWMLow, uint8(mask)); err != nil {
		return err
	}
	return c.WriteRegister(protocol.RegEnablePWMHigh, uint8(mask>>8))
}

// SetDutyCycle writes the shared PWM duty register.
func (c *Controller) SetDutyCycle(value uint8) error {
	return c.WriteRegister(protocol.RegPWMDuty, value)
}

// Close closes the bridge.
func (c *Controller) Close() error {
	return c.bridge.Close()
}

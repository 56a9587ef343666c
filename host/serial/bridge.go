// Package serial connects the host to a line-driver adapter: a small
// firmware that clocks received bytes onto the bus pins, one byte per step,
// at its own fixed step rate.
package serial

import (
	"fmt"

	"gopwm/protocol"
)

// Bridge streams waveforms to a line-driver adapter over a serial port.
// The stream is write-only; the adapter sends nothing back.
type Bridge struct {
	port Port
}

// NewBridge wraps an already-open port.
func NewBridge(port Port) *Bridge {
	return &Bridge{port: port}
}

// DialBridge opens the configured device and wraps it.
func DialBridge(cfg *Config) (*Bridge, error) {
	port, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return NewBridge(port), nil
}

// Play hands one waveform to the adapter. It returns once the bytes reach
// the port; pacing the steps onto the pins is the adapter's job.
func (b *Bridge) Play(wave protocol.Waveform) error {
	if len(wave) == 0 {
		return nil
	}
	buf := wave.Bytes()
	n, err := b.port.Write(buf)
	if err != nil {
		return fmt.Errorf("failed to write waveform: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(buf))
	}
	return b.port.Flush()
}

// Close closes the underlying port.
func (b *Bridge) Close() error {
	return b.port.Close()
}

//go:build linux

// Package gpiomem drives the bus lines straight from memory-mapped GPIO on
// Raspberry Pi class boards, using the BCM2835 register layout exposed at
// /dev/gpiomem.
package gpiomem

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"gopwm/protocol"
)

const (
	devicePath = "/dev/gpiomem"
	mapLength  = 4 * 1024

	// Register word offsets within the GPIO block.
	fsel0 = 0x00 / 4
	set0  = 0x1C / 4
	clr0  = 0x28 / 4

	// Highest BCM number brought out on the 40-pin header.
	maxPin = 27
)

// DefaultStepDelay paces bit-banged waveforms. Sleep gives a floor per
// step, not an exact rate.
const DefaultStepDelay = 10 * time.Microsecond

// Pins assigns BCM numbers to the three bus lines.
type Pins struct {
	Clock   uint8
	Data    uint8
	SelectN uint8
}

// DefaultPins uses the SPI0 header pins: SCLK, MOSI and CE0.
func DefaultPins() Pins {
	return Pins{Clock: 11, Data: 10, SelectN: 8}
}

// Bridge bit-bangs waveforms onto the GPIO block.
type Bridge struct {
	file      *os.File
	mem       []byte
	regs      []uint32
	pins      Pins
	stepDelay time.Duration
}

// Open maps the GPIO block and claims the three bus lines as outputs,
// parking them at the idle state.
func Open(pins Pins, stepDelay time.Duration) (*Bridge, error) {
	for _, p := range []uint8{pins.Clock, pins.Data, pins.SelectN} {
		if p > maxPin {
			return nil, fmt.Errorf("pin %d outside the GPIO header range", p)
		}
	}

	f, err := os.OpenFile(devicePath, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", devicePath, err)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, mapLength, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map GPIO registers: %w", err)
	}

	b := &Bridge{
		file: f,
		mem:  mem,
		// The GPIO registers need whole-word stores, so view the
		// mapping as words rather than going through the byte slice.
		regs:      unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), mapLength/4),
		pins:      pins,
		stepDelay: stepDelay,
	}
	b.configureOutput(pins.Clock)
	b.configureOutput(pins.Data)
	b.configureOutput(pins.SelectN)
	b.drive(protocol.LineIdle)
	return b, nil
}

// configureOutput switches a pin's function select to output.
func (b *Bridge) configureOutput(pin uint8) {
	reg := fsel0 + int(pin)/10
	shift := uint(pin%10) * 3
	v := b.regs[reg]
	v &^= 7 << shift
	v |= 1 << shift
	b.regs[reg] = v
}

func (b *Bridge) setPin(pin uint8, level bool) {
	if level {
		b.regs[set0] = 1 << pin
	} else {
		b.regs[clr0] = 1 << pin
	}
}

// drive presents one line state on the pins. Data and select settle before
// the clock line moves.
func (b *Bridge) drive(s protocol.LineState) {
	b.setPin(b.pins.Data, s.Data())
	b.setPin(b.pins.SelectN, s.SelectN())
	b.setPin(b.pins.Clock, s.Clock())
}

// Play bit-bangs the waveform, holding each step for the configured delay.
func (b *Bridge) Play(wave protocol.Waveform) error {
	for _, s := range wave {
		b.drive(s)
		if b.stepDelay > 0 {
			time.Sleep(b.stepDelay)
		}
	}
	return nil
}

// Close parks the bus idle and unmaps the GPIO block.
func (b *Bridge) Close() error {
	b.drive(protocol.LineIdle)
	if err := unix.Munmap(b.mem); err != nil {
		return fmt.Errorf("failed to unmap GPIO registers: %w", err)
	}
	return b.file.Close()
}

// OutputPin claims one extra header pin as an output and returns a function
// driving it, for mounting the bit-banged SPI driver on spare pins.
func (b *Bridge) OutputPin(pin uint8) (func(bool), error) {
	if pin > maxPin {
		return nil, fmt.Errorf("pin %d outside the GPIO header range", pin)
	}
	b.configureOutput(pin)
	b.setPin(pin, false)
	return func(level bool) { b.setPin(pin, level) }, nil
}

//go:build rp2040 || rp2350

package pio

// PIO bus capture frontend using the tinygo-org/pio package
// Rising edges on the serial clock are detected in hardware, so the CPU
// never polls the clock line and never misses an edge while busy.

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program for serial bus capture
// Sample word format:
//
//	Bit 0: serial data level at the rising clock edge
//	Bit 1: chip select level at the rising clock edge (active low)
//
// Program flow:
//  1. Wait for the serial clock to go low
//  2. Wait for the serial clock to go high (rising edge)
//  3. Shift data and select into the ISR, autopush at 2 bits
//
// The program has no jumps, so it can load at any instruction offset.
func buildCaptureProgram(clockPin uint8) []uint16 {
	return []uint16{
		// .wrap_target
		rp2pio.EncodeWaitGPIO(false, clockPin),          // 0: wait 0 gpio CLOCK
		rp2pio.EncodeWaitGPIO(true, clockPin),           // 1: wait 1 gpio CLOCK
		rp2pio.EncodeIn(rp2pio.SrcDestPins, sampleBits), // 2: in pins, 2
		// .wrap
	}
}

const (
	sampleBits = 2
	sampleMask = (1 << sampleBits) - 1
)

// Frontend captures serial bus samples with a PIO state machine.
// One RX FIFO word is produced per rising clock edge.
type Frontend struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	offset  uint8
	clock   machine.Pin
	data    machine.Pin
	selectN machine.Pin
}

// NewFrontend loads the capture program and starts sampling.
// pioNum: 0 for PIO0, 1 for PIO1
// smNum: 0-3 for state machine number
// The select pin must be the GPIO directly above the data pin because
// `in pins, 2` reads two adjacent GPIOs starting at the input base.
func NewFrontend(pioNum, smNum uint8, clock, data, selectN machine.Pin) (*Frontend, error) {
	if selectN != data+1 {
		return nil, errors.New("select pin must be data pin + 1")
	}

	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	f := &Frontend{
		pio:     pioHW,
		sm:      pioHW.StateMachine(smNum),
		clock:   clock,
		data:    data,
		selectN: selectN,
	}

	f.sm.Claim()
	if !f.sm.IsValid() {
		return nil, errors.New("invalid state machine")
	}

	program := buildCaptureProgram(uint8(clock))
	offset, err := f.pio.AddProgram(program, -1)
	if err != nil {
		return nil, err
	}
	f.offset = offset

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset, offset+uint8(len(program))-1)
	cfg.SetInPins(data)

	// Shift left, autopush every 2-bit sample: data lands in bit 0,
	// select in bit 1 of each FIFO word.
	cfg.SetInShift(false, true, sampleBits)

	// The TX FIFO is unused, so join it to the RX side for 8 words of
	// capture headroom.
	cfg.SetFIFOJoin(rp2pio.FIFO_JOIN_RX)

	// Full speed clock - the wait instructions pace the program
	cfg.SetClkDivIntFrac(1, 0)

	// All three lines are inputs to the state machine
	inMask := uint32((1 << clock) | (1 << data) | (1 << selectN))
	f.sm.SetPindirsMasked(0, inMask)

	pincfg := machine.PinConfig{Mode: pioHW.PinMode()}
	clock.Configure(pincfg)
	data.Configure(pincfg)
	selectN.Configure(pincfg)

	// The GPIO input synchronizers stay enabled: every line settles for
	// two system clocks before the program samples it.

	f.sm.Init(offset, cfg)
	f.sm.ClearFIFOs()
	f.sm.SetEnabled(true)

	return f, nil
}

// Sample returns the next captured bus sample.
// ok is false when no clock edge has been captured since the last call.
// If samples are not drained fast enough the state machine stalls on the
// full FIFO and further clock edges are missed, not reordered.
func (f *Frontend) Sample() (sample uint8, ok bool) {
	if f.sm.IsRxFIFOEmpty() {
		return 0, false
	}
	return uint8(f.sm.RxGet()) & sampleMask, true
}

// DecodeSample splits a captured sample into the serial data bit and the
// chip select state. selected is true while chip select is held low.
func DecodeSample(sample uint8) (dataBit, selected bool) {
	return sample&0x01 != 0, sample&0x02 == 0
}

// Pending returns the number of captured samples waiting in the FIFO.
func (f *Frontend) Pending() uint32 {
	return f.sm.RxFIFOLevel()
}

// Stop halts capture and discards any queued samples.
func (f *Frontend) Stop() {
	f.sm.SetEnabled(false)
	f.sm.ClearFIFOs()
}

// Restart resumes capture after Stop with a clean FIFO.
func (f *Frontend) Restart() {
	f.sm.ClearFIFOs()
	f.sm.Restart()
	f.sm.SetEnabled(true)
}

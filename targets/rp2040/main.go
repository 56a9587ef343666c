//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"gopwm/core"
	"gopwm/targets/pio"
)

// Bus input pins. The select line sits directly above the data line
// because the capture program reads both as one two-pin window.
const (
	busClockPin  = machine.GPIO2
	busDataPin   = machine.GPIO3
	busSelectPin = machine.GPIO4
)

var (
	// Decode pipeline state. The PIO frontend emits one sample per
	// serial-clock rising edge, so the synchronizer and clock edge
	// detector stages live in hardware.
	acc       core.FrameAccumulator
	readyEdge core.EdgeDetector
	regs      core.RegisterFile

	// Debug counters
	applyErrors  uint32
	loopRecovers uint32
)

func main() {
	// CRITICAL: Disable watchdog on boot to clear any previous state
	// This prevents issues with watchdog persisting across resets
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// Route debug output through USB CDC
	core.SetDebugWriter(func(s string) { println(s) })
	core.InitAsyncDebug()

	portDriver := NewRPPortDriver()
	if err := portDriver.Configure(); err != nil {
		println("port driver init failed:", err.Error())
		return
	}
	core.SetPortDriver(portDriver)

	pwmDriver := NewRPPWMDriver()
	if err := pwmDriver.Configure(core.PWMPeriodNS); err != nil {
		println("pwm driver init failed:", err.Error())
		return
	}
	core.SetPWMDriver(pwmDriver)

	// All channels off until the first committed write
	if err := core.ApplyRegisters(&regs); err != nil {
		println("output init failed:", err.Error())
		return
	}

	frontend, err := pio.NewFrontend(0, 0, busClockPin, busDataPin, busSelectPin)
	if err != nil {
		println("bus capture init failed:", err.Error())
		return
	}

	// Main loop - start immediately
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopRecovers++
				}
			}()

			drainSamples(frontend)
		}()

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}

// drainSamples runs every queued bus sample through the decode pipeline.
// Each sample is one serial-clock rising edge: the data bit is accepted
// when chip select was low at that edge, and a completed frame commits
// to the register file and out to the drivers.
func drainSamples(f *pio.Frontend) {
	for {
		sample, ok := f.Sample()
		if !ok {
			return
		}
		dataBit, selected := pio.DecodeSample(sample)

		acc.Advance(dataBit, true, selected, false)
		if !readyEdge.Advance(acc.Ready(), false) {
			continue
		}

		frame := acc.Frame()
		core.RecordDecode(frame)

		before := regs.Snapshot()
		regs.Advance(frame, true, false)
		if regs.Snapshot() != before {
			if err := core.ApplyRegisters(&regs); err != nil {
				applyErrors++
			}
		}

		core.DebugAsync("decode #" + utoa(core.DecodeCount()) +
			" frame=0x" + hex16(uint16(frame)))
	}
}

// utoa converts uint32 to string without importing strconv (for embedded)
func utoa(v uint32) string {
	if v == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for v > 0 {
		pos--
		buf[pos] = byte('0' + v%10)
		v /= 10
	}

	return string(buf[pos:])
}

// hex16 converts a 16-bit value to a fixed-width hex string
func hex16(v uint16) string {
	const hexDigits = "0123456789abcdef"
	var buf [4]byte
	for i := 3; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}

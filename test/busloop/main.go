// Bus loop self-check
//
// Drives a controller through the simulated device model and verifies the
// full decode path: waveform build, bit capture, frame decode, register
// commit, output gating and PWM generation. Useful as a bring-up smoke
// test before pointing the controller at real hardware.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopwm/core"
	"gopwm/host/controller"
	"gopwm/host/sim"
	"gopwm/protocol"
)

type rig struct {
	bridge *sim.Bridge
	ctrl   *controller.Controller
	dev    *core.Device
}

func newRig() *rig {
	b := sim.NewBridge()
	return &rig{
		bridge: b,
		ctrl:   controller.New(b),
		dev:    b.Device(),
	}
}

func main() {
	flag.Parse()

	r := newRig()
	defer r.ctrl.Close()

	checks := []struct {
		name string
		run  func(*rig) error
	}{
		{"enable write drives the low port", checkLowPort},
		{"high-byte write drives the high port", checkHighPort},
		{"unknown-address and read frames change nothing", checkIgnoredFrames},
		{"reset clears state and decoding recovers", checkResetRecovery},
		{"back-to-back frames both decode", checkBackToBack},
		{"pwm period and duty cycle", checkPWM},
	}

	fmt.Println("gopwm bus loop self-check")
	failures := 0
	for i, c := range checks {
		fmt.Printf("=== Check %d: %s ===\n", i+1, c.name)
		if err := c.run(r); err != nil {
			fmt.Printf("✗ %v\n", err)
			failures++
			continue
		}
		fmt.Println("✓ ok")
	}

	fmt.Printf("\n%d/%d checks passed\n", len(checks)-failures, len(checks))
	if failures > 0 {
		os.Exit(1)
	}
}

func checkLowPort(r *rig) error {
	if err := r.ctrl.WriteRegister(protocol.RegEnableOutLow, 0xF0); err != nil {
		return err
	}
	low, high := r.dev.Outputs()
	if low != 0xF0 || high != 0x00 {
		return fmt.Errorf("outputs = %02x %02x, want f0 00", low, high)
	}
	return nil
}

func checkHighPort(r *rig) error {
	if err := r.ctrl.WriteRegister(protocol.RegEnableOutHigh, 0xCC); err != nil {
		return err
	}
	low, high := r.dev.Outputs()
	if low != 0xF0 || high != 0xCC {
		return fmt.Errorf("outputs = %02x %02x, want f0 cc", low, high)
	}
	return nil
}

func checkIgnoredFrames(r *rig) error {
	before := r.dev.Registers().Snapshot()

	// Write flag set but the address is unmapped
	if err := r.ctrl.WriteFrame(protocol.MakeFrame(true, 0x10, 0xAA)); err != nil {
		return err
	}
	// Mapped address but read intent
	if err := r.ctrl.WriteFrame(protocol.MakeFrame(false, protocol.RegEnableOutLow, 0xAA)); err != nil {
		return err
	}

	after := r.dev.Registers().Snapshot()
	if after != before {
		return fmt.Errorf("registers changed: %02x -> %02x", before, after)
	}
	low, high := r.dev.Outputs()
	if low != 0xF0 || high != 0xCC {
		return fmt.Errorf("outputs = %02x %02x, want f0 cc", low, high)
	}
	return nil
}

func checkResetRecovery(r *rig) error {
	r.bridge.Reset()

	if snap := r.dev.Registers().Snapshot(); snap != ([protocol.RegCount]uint8{}) {
		return fmt.Errorf("registers after reset = %02x, want all zero", snap)
	}
	low, high := r.dev.Outputs()
	if low != 0 || high != 0 {
		return fmt.Errorf("outputs after reset = %02x %02x, want 00 00", low, high)
	}

	// The pipeline must decode normally again after reset
	if err := r.ctrl.WriteRegister(protocol.RegEnableOutLow, 0x0F); err != nil {
		return err
	}
	low, high = r.dev.Outputs()
	if low != 0x0F || high != 0x00 {
		return fmt.Errorf("outputs after rewrite = %02x %02x, want 0f 00", low, high)
	}
	return nil
}

func checkBackToBack(r *rig) error {
	core.ClearDecodeRing()

	if err := r.ctrl.WriteRegister(protocol.RegPWMDuty, 0x40); err != nil {
		return err
	}
	if err := r.ctrl.WriteRegister(protocol.RegPWMDuty, 0x80); err != nil {
		return err
	}

	if got := core.DecodeCount(); got != 2 {
		return fmt.Errorf("decoded %d frames, want 2", got)
	}
	if duty := r.dev.Registers().Duty(); duty != 0x80 {
		return fmt.Errorf("duty = %02x, want 80 from the second frame", duty)
	}
	return nil
}

func checkPWM(r *rig) error {
	// Channel 0 enabled and selected for PWM at 50% duty
	if err := r.ctrl.WriteRegister(protocol.RegEnableOutLow, 0x01); err != nil {
		return err
	}
	if err := r.ctrl.WriteRegister(protocol.RegEnablePWMLow, 0x01); err != nil {
		return err
	}
	if err := r.ctrl.SetDutyCycle(0x80); err != nil {
		return err
	}

	// Find two rising edges of channel 0 to measure the period
	var edges []int
	lastLevel := true
	for t := 0; t < 3*core.PWMPeriodTicks && len(edges) < 2; t++ {
		r.bridge.Idle(1)
		low, _ := r.dev.Outputs()
		level := low&0x01 != 0
		if level && !lastLevel {
			edges = append(edges, t)
		}
		lastLevel = level
	}
	if len(edges) < 2 {
		return fmt.Errorf("found %d rising edges in %d ticks, want 2", len(edges), 3*core.PWMPeriodTicks)
	}
	if period := edges[1] - edges[0]; period != core.PWMPeriodTicks {
		return fmt.Errorf("period = %d ticks, want %d", period, core.PWMPeriodTicks)
	}

	// Count high ticks across one full period
	highTicks := 0
	for t := 0; t < core.PWMPeriodTicks; t++ {
		r.bridge.Idle(1)
		if low, _ := r.dev.Outputs(); low&0x01 != 0 {
			highTicks++
		}
	}
	wantHigh := core.PWMPeriodTicks / 2
	if highTicks != wantHigh {
		return fmt.Errorf("duty 0x80 high for %d of %d ticks, want %d",
			highTicks, core.PWMPeriodTicks, wantHigh)
	}
	return nil
}

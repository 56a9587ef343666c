package core

import (
	"testing"
)

// countHigh advances the generator over n ticks at a fixed duty and counts
// the ticks driven high.
func countHigh(p *PWMGenerator, duty uint8, n int) int {
	high := 0
	for i := 0; i < n; i++ {
		if p.Advance(duty, false) {
			high++
		}
	}
	return high
}

func TestPWMDutyCycle(t *testing.T) {
	cases := []struct {
		duty uint8
		high int
	}{
		{0x00, 0},
		{0x01, 1 * pwmPrescale},
		{0x7F, 127 * pwmPrescale},
		{0x80, 128 * pwmPrescale},
		{0xFE, 254 * pwmPrescale},
		{0xFF, PWMPeriodTicks},
	}
	for _, tc := range cases {
		var p PWMGenerator
		if high := countHigh(&p, tc.duty, PWMPeriodTicks); high != tc.high {
			t.Errorf("duty 0x%02x: expected %d high ticks per period, got %d", tc.duty, tc.high, high)
		}
	}
}

func TestPWMPeriodLength(t *testing.T) {
	var p PWMGenerator
	p.Advance(0x10, false)
	if p.Counter() != 0 {
		t.Fatalf("Expected counter still 0 after one tick, got %d", p.Counter())
	}

	// One full period returns the counter to where it started.
	var q PWMGenerator
	for i := 0; i < PWMPeriodTicks; i++ {
		q.Advance(0x10, false)
	}
	if q.Counter() != 0 {
		t.Errorf("Expected counter wrapped to 0 after %d ticks, got %d", PWMPeriodTicks, q.Counter())
	}
}

func TestPWMDutyCycleUnaligned(t *testing.T) {
	// The high count per period window holds regardless of where in the
	// period the window starts.
	var p PWMGenerator
	for i := 0; i < 100; i++ {
		p.Advance(0x40, false)
	}
	if high := countHigh(&p, 0x40, PWMPeriodTicks); high != 64*pwmPrescale {
		t.Errorf("Expected %d high ticks, got %d", 64*pwmPrescale, high)
	}
}

func TestPWMReset(t *testing.T) {
	var p PWMGenerator
	for i := 0; i < 500; i++ {
		p.Advance(0xFF, false)
	}

	if p.Advance(0xFF, true) {
		t.Error("Expected low output during reset")
	}
	if p.Counter() != 0 {
		t.Errorf("Expected counter 0 after reset, got %d", p.Counter())
	}
}

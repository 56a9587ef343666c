package core

import (
	"testing"
)

func TestEdgeDetectorPulses(t *testing.T) {
	var e EdgeDetector

	seq := []bool{false, true, true, false, true, false, false}
	want := []bool{false, true, false, false, true, false, false}
	for i, in := range seq {
		if pulse := e.Advance(in, false); pulse != want[i] {
			t.Errorf("tick %d: expected pulse %v, got %v", i, want[i], pulse)
		}
	}
}

func TestEdgeDetectorFirstSampleHigh(t *testing.T) {
	var e EdgeDetector

	// Out of reset the stored previous value is low, so an already-high
	// input counts as a rising edge.
	if !e.Advance(true, false) {
		t.Error("Expected pulse when first sample is high")
	}
	if e.Advance(true, false) {
		t.Error("Expected no pulse while input stays high")
	}
}

func TestEdgeDetectorReset(t *testing.T) {
	var e EdgeDetector
	e.Advance(true, false)

	if e.Advance(true, true) {
		t.Error("Expected no pulse during reset")
	}
	// Reset cleared the previous value, so a held-high input pulses once
	// more after release.
	if !e.Advance(true, false) {
		t.Error("Expected pulse on first tick after reset")
	}
	if e.Advance(true, false) {
		t.Error("Expected no second pulse")
	}
}

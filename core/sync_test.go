package core

import (
	"testing"
)

func TestSynchronizerDelay(t *testing.T) {
	s := NewSynchronizer(2)

	// Raw goes high at the first tick; output must stay low for exactly
	// the chain depth before following.
	if out := s.Advance(true, false); out {
		t.Error("Expected low output on first tick")
	}
	if out := s.Advance(true, false); out {
		t.Error("Expected low output one tick after raw change")
	}
	if out := s.Advance(true, false); !out {
		t.Error("Expected high output two ticks after raw change")
	}

	// Raw drops; same delay on the way down.
	if out := s.Advance(false, false); !out {
		t.Error("Expected high output on first tick after raw drop")
	}
	if out := s.Advance(false, false); !out {
		t.Error("Expected high output one tick after raw drop")
	}
	if out := s.Advance(false, false); out {
		t.Error("Expected low output two ticks after raw drop")
	}
}

func TestSynchronizerDepths(t *testing.T) {
	for _, depth := range []int{2, 3, 4} {
		s := NewSynchronizer(depth)
		if s.Depth() != depth {
			t.Errorf("Expected depth %d, got %d", depth, s.Depth())
		}
		for i := 0; i < depth; i++ {
			if out := s.Advance(true, false); out {
				t.Errorf("depth %d: output went high after %d ticks", depth, i+1)
			}
		}
		if out := s.Advance(true, false); !out {
			t.Errorf("depth %d: output still low after %d ticks", depth, depth+1)
		}
	}
}

func TestSynchronizerGlitchAbsorbed(t *testing.T) {
	s := NewSynchronizer(2)

	// A pulse shorter than a tick never existed as far as callers are
	// concerned; a one-tick raw pulse still comes out as one tick, just
	// delayed.
	seq := []bool{false, true, false, false, false}
	want := []bool{false, false, false, true, false}
	for i, raw := range seq {
		if out := s.Advance(raw, false); out != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], out)
		}
	}
}

func TestSynchronizerReset(t *testing.T) {
	s := NewSynchronizer(2)
	s.Advance(true, false)
	s.Advance(true, false)

	if out := s.Advance(true, true); out {
		t.Error("Expected low output during reset")
	}
	// Chain was cleared, so the delay starts over.
	if out := s.Advance(true, false); out {
		t.Error("Expected low output on first tick after reset")
	}
	if out := s.Advance(true, false); out {
		t.Error("Expected low output on second tick after reset")
	}
	if out := s.Advance(true, false); !out {
		t.Error("Expected high output once the chain refilled")
	}
}

func TestSynchronizerMinDepth(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for depth below minimum")
		}
	}()
	NewSynchronizer(1)
}

func TestVectorSynchronizerBitsIndependent(t *testing.T) {
	v := NewVectorSynchronizer(2)

	// Two bits change on different ticks; each must keep its own delay.
	v.Advance(0x01, false)
	v.Advance(0x03, false)
	if out := v.Advance(0x03, false); out != 0x01 {
		t.Errorf("Expected 0x01, got 0x%02x", out)
	}
	if out := v.Advance(0x03, false); out != 0x03 {
		t.Errorf("Expected 0x03, got 0x%02x", out)
	}
}

func TestVectorSynchronizerReset(t *testing.T) {
	v := NewVectorSynchronizer(3)
	v.Advance(0xFF, false)
	v.Advance(0xFF, false)

	if out := v.Advance(0xFF, true); out != 0 {
		t.Errorf("Expected zero output during reset, got 0x%02x", out)
	}
	if out := v.Advance(0xFF, false); out != 0 {
		t.Errorf("Expected zero output while chain refills, got 0x%02x", out)
	}
}

// Package core implements the peripheral's decode pipeline as a
// cycle-accurate model: synchronizers re-time the asynchronous bus lines
// into the tick domain, an edge detector times bit acceptance, the frame
// accumulator assembles 16-bit commands, and the decoder applies confirmed
// writes to the register file feeding the PWM and output-gating consumers.
//
// Every stateful component follows the same convention: Advance is called
// exactly once per system tick, consumes this tick's inputs, and returns its
// registered state as of the start of the tick. Edge pulses are the one
// exception and are valid within the tick that produces them.
package core

const (
	// MinSyncDepth is the shortest usable chain; one stage cannot absorb a
	// metastable sample.
	MinSyncDepth = 2

	// DefaultSyncDepth matches the two input flip-flops the hardware bus
	// frontend provides.
	DefaultSyncDepth = 2
)

// Synchronizer re-times one asynchronous input bit through a chain of
// sampling stages. The output during a tick equals the raw input as it was
// depth ticks earlier, so a raw change can never reach synchronous consumers
// within the tick it occurs.
type Synchronizer struct {
	stages []bool
}

// NewSynchronizer builds a chain of the given depth. Panics if depth is
// below MinSyncDepth.
func NewSynchronizer(depth int) *Synchronizer {
	if depth < MinSyncDepth {
		panic("sync depth below minimum")
	}
	return &Synchronizer{stages: make([]bool, depth)}
}

// Depth returns the number of stages in the chain.
func (s *Synchronizer) Depth() int { return len(s.stages) }

// Advance samples raw for this tick and returns the synchronized level.
// While reset is held every stage is forced false and the output is false.
func (s *Synchronizer) Advance(raw, reset bool) bool {
	if reset {
		for i := range s.stages {
			s.stages[i] = false
		}
		return false
	}
	last := len(s.stages) - 1
	out := s.stages[last]
	for i := last; i > 0; i-- {
		s.stages[i] = s.stages[i-1]
	}
	s.stages[0] = raw
	return out
}

// VectorSynchronizer applies one independent synchronizer per bit of a
// byte-wide signal. Whole words shift through the chain, which keeps the
// bits independent by construction.
type VectorSynchronizer struct {
	stages []uint8
}

// NewVectorSynchronizer builds a per-bit chain of the given depth. Panics if
// depth is below MinSyncDepth.
func NewVectorSynchronizer(depth int) *VectorSynchronizer {
	if depth < MinSyncDepth {
		panic("sync depth below minimum")
	}
	return &VectorSynchronizer{stages: make([]uint8, depth)}
}

// Depth returns the number of stages in the chain.
func (v *VectorSynchronizer) Depth() int { return len(v.stages) }

// Advance samples the raw word for this tick and returns the synchronized
// word, each bit delayed by the chain depth.
func (v *VectorSynchronizer) Advance(raw uint8, reset bool) uint8 {
	if reset {
		for i := range v.stages {
			v.stages[i] = 0
		}
		return 0
	}
	last := len(v.stages) - 1
	out := v.stages[last]
	for i := last; i > 0; i-- {
		v.stages[i] = v.stages[i-1]
	}
	v.stages[0] = raw
	return out
}

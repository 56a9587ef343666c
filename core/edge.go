package core

// EdgeDetector emits a one-tick pulse when its tracked signal transitions
// low to high. Only the previous-value bit is registered; the pulse itself
// is valid during the tick that samples the rising input.
type EdgeDetector struct {
	prev bool
}

// Advance samples in for this tick and returns the rising-edge pulse. While
// reset is held both the pulse and the stored previous value are forced
// false; detection resumes on the first tick after release.
func (e *EdgeDetector) Advance(in, reset bool) bool {
	if reset {
		e.prev = false
		return false
	}
	pulse := in && !e.prev
	e.prev = in
	return pulse
}

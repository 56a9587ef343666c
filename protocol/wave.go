package protocol

// Waveform is a flat sequence of line states. Every element is held on the
// bus for one step time; what a step time is belongs to the bridge playing
// it (one serial byte, one dwell loop, N model ticks).
type Waveform []LineState

// WaveConfig sizes the transaction builder. All values are in steps.
type WaveConfig struct {
	// HalfPeriodSteps is half a serial-clock period: data is presented with
	// the clock low for this long, then sampled with the clock high for the
	// same time.
	HalfPeriodSteps int

	// LeadSteps is the deselected rest before a transaction and the
	// select-to-first-bit setup, each.
	LeadSteps int

	// TailSteps is the deselected hold after a transaction.
	TailSteps int
}

// DefaultWaveConfig returns the builder defaults. One-step half periods are
// enough for any bridge whose step dwell covers the synchronizer depth.
func DefaultWaveConfig() WaveConfig {
	return WaveConfig{HalfPeriodSteps: 1, LeadSteps: 2, TailSteps: 2}
}

func (c WaveConfig) sanitized() WaveConfig {
	if c.HalfPeriodSteps < 1 {
		c.HalfPeriodSteps = 1
	}
	if c.LeadSteps < 1 {
		c.LeadSteps = 1
	}
	if c.TailSteps < 1 {
		c.TailSteps = 1
	}
	return c
}

// TransactionSteps returns the length of one built transaction.
func (c WaveConfig) TransactionSteps() int {
	c = c.sanitized()
	return 2*c.LeadSteps + 2*c.HalfPeriodSteps*FrameBits + c.HalfPeriodSteps + c.TailSteps
}

// BuildTransaction expands one frame into the select/clock/data sequence a
// controller drives: rest deselected, select, shift 16 bits MSB first (data
// presented during the clock-low half, held through the clock-high half),
// park the clock low again, deselect.
func BuildTransaction(f Frame, cfg WaveConfig) Waveform {
	cfg = cfg.sanitized()
	w := make(Waveform, 0, cfg.TransactionSteps())

	w = w.hold(LineIdle, cfg.LeadSteps)
	w = w.hold(MakeLineState(false, false, false), cfg.LeadSteps)
	for i := FrameBits - 1; i >= 0; i-- {
		bit := f.Bit(uint8(i))
		w = w.hold(MakeLineState(false, bit, false), cfg.HalfPeriodSteps)
		w = w.hold(MakeLineState(true, bit, false), cfg.HalfPeriodSteps)
	}
	w = w.hold(MakeLineState(false, false, false), cfg.HalfPeriodSteps)
	w = w.hold(LineIdle, cfg.TailSteps)
	return w
}

func (w Waveform) hold(s LineState, steps int) Waveform {
	for i := 0; i < steps; i++ {
		w = append(w, s)
	}
	return w
}

// Bytes returns the waveform as the raw byte stream a line-driver adapter
// consumes.
func (w Waveform) Bytes() []byte {
	buf := make([]byte, len(w))
	for i, s := range w {
		buf[i] = byte(s & LineMask)
	}
	return buf
}

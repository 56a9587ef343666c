// PWM generator model. The duty-cycle register feeds one shared PWM source;
// output gating decides per channel whether the PWM level or a steady enable
// reaches the pin.
package core

const (
	// pwmPrescale is the number of system ticks per counter increment.
	pwmPrescale = 13

	// PWMPeriodTicks is one full PWM period in system ticks: the 8-bit
	// counter at the prescaled rate, about 3.0 kHz at the 10 MHz reference
	// clock.
	PWMPeriodTicks = pwmPrescale * 256

	// PWMPeriodNS is the matching hardware PWM period targets configure,
	// PWMPeriodTicks at the 10 MHz reference clock.
	PWMPeriodNS = 332800
)

// PWMGenerator is the shared PWM source: an 8-bit counter advanced once per
// pwmPrescale ticks, compared against the duty register.
type PWMGenerator struct {
	prescale uint8
	counter  uint8
}

// Advance processes one tick and returns the output level for this tick.
// The level is counter < duty, with duty 0xFF forced high so full duty is a
// solid line rather than 255/256. Duty 0x00 never drives high. Reset zeroes
// the prescaler and counter.
func (p *PWMGenerator) Advance(duty uint8, reset bool) bool {
	if reset {
		p.prescale, p.counter = 0, 0
		return false
	}
	level := p.counter < duty || duty == 0xFF
	p.prescale++
	if p.prescale == pwmPrescale {
		p.prescale = 0
		p.counter++
	}
	return level
}

// Counter returns the PWM counter position within the current period.
func (p *PWMGenerator) Counter() uint8 { return p.counter }

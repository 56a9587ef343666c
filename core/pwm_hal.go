package core

// PWMDriver is the abstract PWM interface that core code uses to mirror the
// modeled PWM source onto real hardware. Platform-specific implementations
// handle actual pin control.
type PWMDriver interface {
	// Configure sets up the hardware PWM source with the given period.
	Configure(periodNS uint64) error

	// SetDuty sets the shared 8-bit duty value. 0x00 is fully off and
	// 0xFF fully on.
	SetDuty(value uint8) error

	// Enable routes the PWM source to the channels set in mask and
	// releases the rest.
	Enable(mask uint16) error
}

// Global singleton used by core code.
var pwmDriver PWMDriver

// SetPWMDriver is called by target-specific code to register its driver.
func SetPWMDriver(d PWMDriver) {
	pwmDriver = d
}

// MustPWM returns the configured driver or panics if missing.
func MustPWM() PWMDriver {
	if pwmDriver == nil {
		panic("PWM driver not configured")
	}
	return pwmDriver
}

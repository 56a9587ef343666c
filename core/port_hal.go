package core

// PortDriver is the abstract output-port interface that core code uses.
// The decoded enable registers form one 16-bit port; platform-specific
// implementations map the port bits onto real pins.
type PortDriver interface {
	// Configure claims the port pins and drives them all low.
	Configure() error

	// Write drives the port. Bits set in mask are driven to the matching
	// bit of value; bits clear in mask are left to another owner, such as
	// the PWM driver.
	Write(value, mask uint16)
}

// Global singleton used by core code.
var portDriver PortDriver

// SetPortDriver is called by target-specific code to register its driver.
func SetPortDriver(d PortDriver) {
	portDriver = d
}

// MustPort returns the configured driver or panics if missing.
func MustPort() PortDriver {
	if portDriver == nil {
		panic("port driver not configured")
	}
	return portDriver
}

package core

// GateOutputs combines the enable and PWM-select registers with the current
// PWM level into the two output bytes. A channel drives high when enabled,
// and an enabled channel selected for PWM follows the PWM level instead.
// Channels 0-7 form the low byte and channels 8-15 the high byte.
func GateOutputs(enableOut, enablePWM uint16, pwmLevel bool) (low, high uint8) {
	out := enableOut &^ enablePWM
	if pwmLevel {
		out |= enableOut & enablePWM
	}
	return uint8(out), uint8(out >> 8)
}

// ApplyRegisters pushes the decoded register state to the hardware drivers.
// Channels selected for PWM are handed to the PWM driver; the rest stay with
// the port driver, which also parks disabled channels low.
func ApplyRegisters(r *RegisterFile) error {
	enableOut := r.EnableOut()
	pwmChannels := enableOut & r.EnablePWM()

	MustPort().Write(enableOut&^pwmChannels, ^pwmChannels)
	if err := MustPWM().SetDuty(r.Duty()); err != nil {
		return err
	}
	return MustPWM().Enable(pwmChannels)
}

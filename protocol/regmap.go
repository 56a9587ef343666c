package protocol

// Register addresses. Writes to any other address are accepted on the wire
// and silently ignored by the device.
const (
	RegEnableOutLow  uint8 = 0x00
	RegEnableOutHigh uint8 = 0x01
	RegEnablePWMLow  uint8 = 0x02
	RegEnablePWMHigh uint8 = 0x03
	RegPWMDuty       uint8 = 0x04

	// RegCount is the number of implemented registers.
	RegCount = 5
)

// RegisterInfo describes one entry of the device's register map.
type RegisterInfo struct {
	Addr uint8
	Name string
	Desc string
}

var registerMap = [RegCount]RegisterInfo{
	{RegEnableOutLow, "en_out_low", "output enable, channels 0-7"},
	{RegEnableOutHigh, "en_out_high", "output enable, channels 8-15"},
	{RegEnablePWMLow, "en_pwm_low", "PWM select, channels 0-7"},
	{RegEnablePWMHigh, "en_pwm_high", "PWM select, channels 8-15"},
	{RegPWMDuty, "pwm_duty", "shared PWM duty cycle, 0x00=0% 0xff=100%"},
}

// Registers returns the register map in address order.
func Registers() []RegisterInfo {
	regs := make([]RegisterInfo, RegCount)
	copy(regs, registerMap[:])
	return regs
}

// RegisterByName looks up a register map entry by name.
func RegisterByName(name string) (RegisterInfo, bool) {
	for _, r := range registerMap {
		if r.Name == name {
			return r, true
		}
	}
	return RegisterInfo{}, false
}

// RegisterName returns the map name for addr, or "" for unmapped addresses.
func RegisterName(addr uint8) string {
	if int(addr) < len(registerMap) {
		return registerMap[addr].Name
	}
	return ""
}

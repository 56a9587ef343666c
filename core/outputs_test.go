package core

import (
	"testing"

	"gopwm/protocol"
)

// mockPortDriver records the last port write
type mockPortDriver struct {
	value  uint16
	mask   uint16
	writes int
}

func (m *mockPortDriver) Configure() error { return nil }

func (m *mockPortDriver) Write(value, mask uint16) {
	m.value, m.mask = value, mask
	m.writes++
}

// mockPWMDriver records the last duty and channel mask
type mockPWMDriver struct {
	duty   uint8
	enable uint16
}

func (m *mockPWMDriver) Configure(periodNS uint64) error { return nil }

func (m *mockPWMDriver) SetDuty(v uint8) error {
	m.duty = v
	return nil
}

func (m *mockPWMDriver) Enable(mask uint16) error {
	m.enable = mask
	return nil
}

func TestGateOutputs(t *testing.T) {
	cases := []struct {
		name      string
		enableOut uint16
		enablePWM uint16
		level     bool
		low, high uint8
	}{
		{"steady low byte", 0x00F0, 0x0000, false, 0xF0, 0x00},
		{"steady high byte", 0xCC00, 0x0000, true, 0x00, 0xCC},
		{"pwm channel low phase", 0x0001, 0x0001, false, 0x00, 0x00},
		{"pwm channel high phase", 0x0001, 0x0001, true, 0x01, 0x00},
		{"mixed steady and pwm", 0x8001, 0x8000, false, 0x01, 0x00},
		{"mixed steady and pwm high", 0x8001, 0x8000, true, 0x01, 0x80},
		{"pwm select without enable", 0x0000, 0x0001, true, 0x00, 0x00},
		{"all channels", 0xFFFF, 0xFFFF, true, 0xFF, 0xFF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			low, high := GateOutputs(tc.enableOut, tc.enablePWM, tc.level)
			if low != tc.low || high != tc.high {
				t.Errorf("Expected %02x/%02x, got %02x/%02x", tc.low, tc.high, low, high)
			}
		})
	}
}

func TestApplyRegisters(t *testing.T) {
	port := &mockPortDriver{}
	pwm := &mockPWMDriver{}
	SetPortDriver(port)
	SetPWMDriver(pwm)

	var r RegisterFile
	r.Advance(protocol.MakeFrame(true, protocol.RegEnableOutLow, 0xF3), true, false)
	r.Advance(protocol.MakeFrame(true, protocol.RegEnablePWMLow, 0x03), true, false)
	r.Advance(protocol.MakeFrame(true, protocol.RegPWMDuty, 0x80), true, false)

	if err := ApplyRegisters(&r); err != nil {
		t.Fatalf("ApplyRegisters failed: %v", err)
	}

	// Channels 0 and 1 go to the PWM driver, the rest stay with the port.
	if port.value != 0x00F0 {
		t.Errorf("Expected port value 0x00F0, got 0x%04x", port.value)
	}
	if port.mask != 0xFFFC {
		t.Errorf("Expected port mask 0xFFFC, got 0x%04x", port.mask)
	}
	if pwm.duty != 0x80 {
		t.Errorf("Expected duty 0x80, got 0x%02x", pwm.duty)
	}
	if pwm.enable != 0x0003 {
		t.Errorf("Expected PWM channels 0x0003, got 0x%04x", pwm.enable)
	}
}

func TestApplyRegistersPWMNeedsEnable(t *testing.T) {
	port := &mockPortDriver{}
	pwm := &mockPWMDriver{}
	SetPortDriver(port)
	SetPWMDriver(pwm)

	// PWM select without output enable hands nothing to the PWM driver.
	var r RegisterFile
	r.Advance(protocol.MakeFrame(true, protocol.RegEnablePWMLow, 0xFF), true, false)

	if err := ApplyRegisters(&r); err != nil {
		t.Fatalf("ApplyRegisters failed: %v", err)
	}
	if pwm.enable != 0 {
		t.Errorf("Expected no PWM channels, got 0x%04x", pwm.enable)
	}
	if port.mask != 0xFFFF {
		t.Errorf("Expected port to own every channel, got mask 0x%04x", port.mask)
	}
	if port.value != 0 {
		t.Errorf("Expected all channels low, got 0x%04x", port.value)
	}
}

func TestMustPortPanicsUnconfigured(t *testing.T) {
	old := portDriver
	defer SetPortDriver(old)
	SetPortDriver(nil)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic without a port driver")
		}
	}()
	MustPort()
}

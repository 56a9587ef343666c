package driver

import (
	"testing"

	"gopwm/core"
	"gopwm/protocol"
)

// busHarness connects pin closures to the device model: every pin write
// settles the model for a few ticks at the new line state, so the bit-bang
// timing is exercised against the real decode pipeline.
type busHarness struct {
	dev  *core.Device
	line protocol.LineState
}

func newBusHarness() *busHarness {
	h := &busHarness{dev: core.NewDevice(), line: protocol.LineIdle}
	h.dev.Reset()
	h.settle()
	return h
}

func (h *busHarness) settle() {
	for i := 0; i < 4; i++ {
		h.dev.Tick(h.line, false)
	}
}

func (h *busHarness) clockPin(level bool) {
	h.line = h.line.WithClock(level)
	h.settle()
}

func (h *busHarness) dataPin(level bool) {
	h.line = h.line.WithData(level)
	h.settle()
}

func (h *busHarness) selectPin(level bool) {
	h.line = h.line.WithSelectN(level)
	h.settle()
}

func newHarnessedDevice(t *testing.T) (*Device, *busHarness) {
	h := newBusHarness()
	spi := &SoftSPI{SCK: h.clockPin, SDO: h.dataPin}
	if err := spi.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	d := New(spi, h.selectPin)
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	return d, h
}

func TestSoftSPIDrivesModel(t *testing.T) {
	d, h := newHarnessedDevice(t)

	if err := d.WriteRegister(protocol.RegEnableOutLow, 0xF0); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}
	h.settle()

	low, high := h.dev.Outputs()
	if low != 0xF0 || high != 0x00 {
		t.Errorf("Expected outputs f0/00, got %02x/%02x", low, high)
	}
}

func TestSoftSPIFullRegisterFile(t *testing.T) {
	d, h := newHarnessedDevice(t)

	if err := d.SetOutputEnables(0x1234); err != nil {
		t.Fatalf("SetOutputEnables failed: %v", err)
	}
	if err := d.SetPWMEnables(0x00C0); err != nil {
		t.Fatalf("SetPWMEnables failed: %v", err)
	}
	if err := d.SetDutyCycle(0x55); err != nil {
		t.Fatalf("SetDutyCycle failed: %v", err)
	}
	h.settle()

	regs := h.dev.Registers()
	if regs.EnableOut() != 0x1234 {
		t.Errorf("Expected enable mask 0x1234, got 0x%04x", regs.EnableOut())
	}
	if regs.EnablePWM() != 0x00C0 {
		t.Errorf("Expected PWM mask 0x00C0, got 0x%04x", regs.EnablePWM())
	}
	if regs.Duty() != 0x55 {
		t.Errorf("Expected duty 0x55, got 0x%02x", regs.Duty())
	}
}

func TestSoftSPIDelayHook(t *testing.T) {
	h := newBusHarness()
	delays := 0
	spi := &SoftSPI{SCK: h.clockPin, SDO: h.dataPin, Delay: func() { delays++ }}
	if err := spi.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	if err := spi.Tx([]byte{0xA5}, nil); err != nil {
		t.Fatalf("Tx failed: %v", err)
	}
	if delays != 16 {
		t.Errorf("Expected 16 delay calls for one byte, got %d", delays)
	}
}

func TestSoftSPITransferReturnsZero(t *testing.T) {
	h := newBusHarness()
	spi := &SoftSPI{SCK: h.clockPin, SDO: h.dataPin}
	if err := spi.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	out, err := spi.Transfer(0xFF)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if out != 0 {
		t.Errorf("Expected zero readback, got 0x%02x", out)
	}
}

func TestSoftSPIConfigureNeedsPins(t *testing.T) {
	spi := &SoftSPI{}
	if err := spi.Configure(); err == nil {
		t.Error("Expected error without pins")
	}
}

package driver

import (
	"fmt"
	"testing"

	"gopwm/protocol"
)

// busRecorder captures SPI traffic and chip-select transitions in order
type busRecorder struct {
	events []string
}

func (b *busRecorder) Tx(w, r []byte) error {
	b.events = append(b.events, fmt.Sprintf("tx %x", w))
	return nil
}

func (b *busRecorder) Transfer(c byte) (byte, error) {
	b.events = append(b.events, fmt.Sprintf("transfer %02x", c))
	return 0, nil
}

func (b *busRecorder) csPin(level bool) {
	b.events = append(b.events, fmt.Sprintf("cs=%v", level))
}

func newRecordedDevice() (*Device, *busRecorder) {
	rec := &busRecorder{}
	return New(rec, rec.csPin), rec
}

func TestDeviceWriteFrame(t *testing.T) {
	d, rec := newRecordedDevice()
	if err := d.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	if err := d.WriteRegister(0x00, 0xF0); err != nil {
		t.Fatalf("WriteRegister failed: %v", err)
	}

	// Select bracket around exactly one 2-byte frame.
	want := []string{"cs=true", "cs=false", "tx 80f0", "cs=true"}
	if len(rec.events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(rec.events), rec.events)
	}
	for i, e := range want {
		if rec.events[i] != e {
			t.Errorf("event %d: expected %q, got %q", i, e, rec.events[i])
		}
	}
}

func TestDeviceMaskWrites(t *testing.T) {
	d, rec := newRecordedDevice()
	if err := d.SetOutputEnables(0xCCF0); err != nil {
		t.Fatalf("SetOutputEnables failed: %v", err)
	}
	if err := d.SetPWMEnables(0x0304); err != nil {
		t.Fatalf("SetPWMEnables failed: %v", err)
	}
	if err := d.SetDutyCycle(0x7F); err != nil {
		t.Fatalf("SetDutyCycle failed: %v", err)
	}

	want := []string{
		"cs=false", "tx 80f0", "cs=true",
		"cs=false", "tx 81cc", "cs=true",
		"cs=false", "tx 8204", "cs=true",
		"cs=false", "tx 8303", "cs=true",
		"cs=false", "tx 847f", "cs=true",
	}
	if len(rec.events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(rec.events), rec.events)
	}
	for i, e := range want {
		if rec.events[i] != e {
			t.Errorf("event %d: expected %q, got %q", i, e, rec.events[i])
		}
	}
}

func TestDeviceFrameEncoding(t *testing.T) {
	cases := []struct {
		addr  uint8
		value uint8
		wire  string
	}{
		{0x00, 0xF0, "tx 80f0"},
		{0x01, 0xCC, "tx 81cc"},
		{0x04, 0xFF, "tx 84ff"},
		{0x7F, 0x00, "tx ff00"},
	}
	for _, tc := range cases {
		d, rec := newRecordedDevice()
		if err := d.WriteRegister(tc.addr, tc.value); err != nil {
			t.Fatalf("WriteRegister(0x%02x) failed: %v", tc.addr, err)
		}
		if got := rec.events[1]; got != tc.wire {
			t.Errorf("Expected %q on the wire, got %q", tc.wire, got)
		}
	}
}

func TestDeviceConfigureNeedsPin(t *testing.T) {
	d := New(&busRecorder{}, nil)
	if err := d.Configure(); err == nil {
		t.Error("Expected error without a chip-select pin")
	}
}

func TestWriteFrameMatchesProtocol(t *testing.T) {
	d, rec := newRecordedDevice()
	f := protocol.MakeFrame(true, 0x04, 0xC3)
	if err := d.WriteFrame(f); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if got, want := rec.events[1], fmt.Sprintf("tx %04x", uint16(f)); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// Package protocol defines the wire format of the control bus: the 16-bit
// command frame, the raw line-state encoding bridges exchange, and waveform
// construction for host-side controllers.
package protocol

import "fmt"

// Frame is one complete command as shifted over the bus, MSB first:
//
//	bit 15    write flag (1 = write; 0 = read intent, decoded but ignored)
//	bits 14-8 7-bit register address
//	bits 7-0  8-bit data payload
type Frame uint16

// FrameBits is the fixed frame length in bits.
const FrameBits = 16

const (
	frameWriteBit  = 15
	frameAddrShift = 8
	frameAddrMask  = 0x7F
)

// MakeFrame builds a command frame from its fields. Address bits above the
// 7-bit field are dropped.
func MakeFrame(write bool, addr, data uint8) Frame {
	f := Frame(addr&frameAddrMask)<<frameAddrShift | Frame(data)
	if write {
		f |= 1 << frameWriteBit
	}
	return f
}

// Write reports whether the write flag is set.
func (f Frame) Write() bool { return f&(1<<frameWriteBit) != 0 }

// Address returns the 7-bit register address field.
func (f Frame) Address() uint8 { return uint8(f>>frameAddrShift) & frameAddrMask }

// Data returns the 8-bit payload field.
func (f Frame) Data() uint8 { return uint8(f) }

// Bit returns bit n of the frame. Bit 15 is the first bit on the wire.
func (f Frame) Bit(n uint8) bool { return f>>(n&0x0F)&1 != 0 }

func (f Frame) String() string {
	op := "rd"
	if f.Write() {
		op = "wr"
	}
	return fmt.Sprintf("%s 0x%02x=0x%02x", op, f.Address(), f.Data())
}

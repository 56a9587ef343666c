package core

import "gopwm/protocol"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// DecodeEvent captures one committed command frame for post-mortem analysis
type DecodeEvent struct {
	Seq   uint32 // Decode ordinal, counts from 1
	Frame protocol.Frame
}

const (
	DecodeRingSize = 16 // Keep last 16 decodes for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	// Disabled by default for performance
	debugEnabled bool = false

	// Decode capture ring buffer (non-blocking, for post-mortem)
	decodeRing     [DecodeRingSize]DecodeEvent
	decodeRingHead uint8
	decodeCount    uint32

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
			// Channel full, drop message (non-blocking)
		}
	}
}

// RecordDecode captures a committed frame in the ring buffer
// This is always non-blocking and very fast
func RecordDecode(frame protocol.Frame) {
	decodeCount++
	idx := decodeRingHead
	decodeRing[idx] = DecodeEvent{
		Seq:   decodeCount,
		Frame: frame,
	}
	decodeRingHead = (idx + 1) % DecodeRingSize
}

// DecodeCount returns the number of frames committed since startup
func DecodeCount() uint32 {
	return decodeCount
}

// DumpDecodeRing outputs the decode ring buffer (call on shutdown/error)
func DumpDecodeRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[DECODE] === Decode Ring Dump ===")
	debugPrintln("[DECODE] Total frames decoded: " + utoa(decodeCount))

	// Read from oldest to newest
	start := decodeRingHead
	for i := uint8(0); i < DecodeRingSize; i++ {
		idx := (start + i) % DecodeRingSize
		evt := &decodeRing[idx]
		if evt.Seq == 0 {
			continue // Empty slot
		}

		op := "rd"
		if evt.Frame.Write() {
			op = "wr"
		}
		debugPrintln("[DECODE] #" + utoa(evt.Seq) +
			" " + op +
			" addr=" + hex8(evt.Frame.Address()) +
			" data=" + hex8(evt.Frame.Data()) +
			" raw=" + hex16(uint16(evt.Frame)))
	}
	debugPrintln("[DECODE] === End Dump ===")
}

// ClearDecodeRing clears the decode capture buffer
func ClearDecodeRing() {
	for i := range decodeRing {
		decodeRing[i] = DecodeEvent{}
	}
	decodeRingHead = 0
	decodeCount = 0
}

//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"

	"gopwm/host/controller"
	"gopwm/host/sim"
	"gopwm/protocol"
)

// Global model instance for the UI
var (
	bridge *sim.Bridge
	ctrl   *controller.Controller
)

func main() {
	// The browser drives a real device model, not a mock: every write is
	// played as a full bus waveform through the decode pipeline.
	bridge = sim.NewBridge()
	ctrl = controller.New(bridge)

	// Export functions to JavaScript
	js.Global().Set("gopwmWasm", js.ValueOf(map[string]interface{}{
		"writeRegister": js.FuncOf(writeRegisterWrapper),
		"readRegisters": js.FuncOf(readRegistersWrapper),
		"readOutputs":   js.FuncOf(readOutputsWrapper),
		"tick":          js.FuncOf(tickWrapper),
		"reset":         js.FuncOf(resetWrapper),
		"version":       protocol.Version,
	}))

	// Keep the program running
	select {}
}

// writeRegisterWrapper plays one register write through the model
// Args: addr (number), value (number)
// Returns: {ticks: number, error: string}
func writeRegisterWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeWriteResult(0, "missing addr or value argument")
	}

	addr := uint8(args[0].Int())
	value := uint8(args[1].Int())

	if err := ctrl.WriteRegister(addr, value); err != nil {
		return makeWriteResult(0, err.Error())
	}
	return makeWriteResult(int(bridge.Device().Ticks()), "")
}

// readRegistersWrapper returns the decoded register file
// Returns: [{addr, name, value}]
func readRegistersWrapper(this js.Value, args []js.Value) interface{} {
	snap := bridge.Device().Registers().Snapshot()

	regs := make([]interface{}, 0, len(snap))
	for _, info := range protocol.Registers() {
		regs = append(regs, map[string]interface{}{
			"addr":  int(info.Addr),
			"name":  info.Name,
			"value": int(snap[info.Addr]),
		})
	}
	return js.ValueOf(regs)
}

// readOutputsWrapper returns the gated output ports
// Returns: {low: number, high: number}
func readOutputsWrapper(this js.Value, args []js.Value) interface{} {
	low, high := bridge.Device().Outputs()
	return js.ValueOf(map[string]interface{}{
		"low":  int(low),
		"high": int(high),
	})
}

// tickWrapper advances the model with the bus idle, so the UI can watch
// the PWM generator between writes
// Args: ticks (number)
// Returns: total tick count (number)
func tickWrapper(this js.Value, args []js.Value) interface{} {
	n := 1
	if len(args) >= 1 {
		n = args[0].Int()
	}
	if n > 0 {
		bridge.Idle(n)
	}
	return js.ValueOf(int(bridge.Device().Ticks()))
}

// resetWrapper pulses the model's reset line
func resetWrapper(this js.Value, args []js.Value) interface{} {
	bridge.Reset()
	return js.ValueOf(true)
}

// Helper to create write result objects
func makeWriteResult(ticks int, errMsg string) js.Value {
	result := make(map[string]interface{})
	result["ticks"] = ticks
	if errMsg != "" {
		result["error"] = errMsg
	}
	return js.ValueOf(result)
}

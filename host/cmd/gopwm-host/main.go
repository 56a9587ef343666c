package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/google/shlex"

	"gopwm/host/controller"
	"gopwm/host/serial"
	"gopwm/host/sim"
	"gopwm/protocol"
)

var (
	bridgeName = flag.String("bridge", "sim", "Bridge to drive: sim, serial or gpiomem")
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path (serial bridge)")
	baud       = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	halfSteps  = flag.Int("half", 1, "Serial-clock half period in waveform steps")
	stepTicks  = flag.Int("step-ticks", sim.DefaultStepTicks, "Model ticks per waveform step (sim bridge)")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	fmt.Println("gopwm Host - Serial Bus PWM Controller")
	fmt.Println("======================================")
	fmt.Println()

	bridge, simBridge, err := openBridge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := protocol.DefaultWaveConfig()
	cfg.HalfPeriodSteps = *halfSteps
	ctrl := controller.NewWithWaveConfig(bridge, cfg)
	defer ctrl.Close()

	fmt.Printf("Driving the %s bridge.\n", *bridgeName)
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args, err := shlex.Split(line)
		if err != nil || len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: bad command line: %v\n", err)
			continue
		}

		switch args[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp(simBridge != nil)

		case "map":
			printMap()

		case "write":
			runCommand(cmdWrite(ctrl, args[1:]))

		case "out":
			runCommand(cmdMask(args[1:], ctrl.SetOutputEnables))

		case "pwm":
			runCommand(cmdMask(args[1:], ctrl.SetPWMEnables))

		case "duty":
			runCommand(cmdDuty(ctrl, args[1:]))

		case "regs":
			runCommand(cmdRegs(simBridge))

		case "outs":
			runCommand(cmdOuts(simBridge))

		case "tick":
			runCommand(cmdTick(simBridge, args[1:]))

		case "reset":
			runCommand(cmdReset(simBridge))

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", args[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// openBridge builds the bridge selected on the command line. The sim bridge
// is additionally returned as itself so the inspection commands can reach
// into the model.
func openBridge() (controller.Bridge, *sim.Bridge, error) {
	switch *bridgeName {
	case "sim":
		b := sim.NewBridge()
		b.SetStepTicks(*stepTicks)
		return b, b, nil

	case "serial":
		scfg := serial.DefaultConfig(*device)
		scfg.Baud = *baud
		b, err := serial.DialBridge(scfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open serial bridge: %w", err)
		}
		return b, nil, nil

	case "gpiomem":
		b, err := openGPIOMemBridge()
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown bridge %q", *bridgeName)
	}
}

func runCommand(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func cmdWrite(ctrl *controller.Controller, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: write <register> <value>")
	}
	addr, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	value, err := parseUint(args[1], 8)
	if err != nil {
		return err
	}
	if err := ctrl.WriteRegister(addr, uint8(value)); err != nil {
		return err
	}
	fmt.Printf("wrote 0x%02x to %s\n", value, registerLabel(addr))
	return nil
}

func cmdMask(args []string, set func(uint16) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: out|pwm <mask>")
	}
	mask, err := parseUint(args[0], 16)
	if err != nil {
		return err
	}
	return set(uint16(mask))
}

func cmdDuty(ctrl *controller.Controller, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: duty <value>")
	}
	value, err := parseUint(args[0], 8)
	if err != nil {
		return err
	}
	return ctrl.SetDutyCycle(uint8(value))
}

func cmdRegs(simBridge *sim.Bridge) error {
	if simBridge == nil {
		return fmt.Errorf("regs is only available on the sim bridge")
	}
	snap := simBridge.Device().Registers().Snapshot()
	for _, info := range protocol.Registers() {
		fmt.Printf("  0x%02x %-12s 0x%02x\n", info.Addr, info.Name, snap[info.Addr])
	}
	return nil
}

func cmdOuts(simBridge *sim.Bridge) error {
	if simBridge == nil {
		return fmt.Errorf("outs is only available on the sim bridge")
	}
	low, high := simBridge.Device().Outputs()
	fmt.Printf("  channels 0-7:  0x%02x\n", low)
	fmt.Printf("  channels 8-15: 0x%02x\n", high)
	return nil
}

func cmdTick(simBridge *sim.Bridge, args []string) error {
	if simBridge == nil {
		return fmt.Errorf("tick is only available on the sim bridge")
	}
	n := 1
	if len(args) == 1 {
		v, err := parseUint(args[0], 32)
		if err != nil {
			return err
		}
		n = int(v)
	} else if len(args) > 1 {
		return fmt.Errorf("usage: tick [count]")
	}
	simBridge.Idle(n)
	fmt.Printf("advanced %d ticks (total %d)\n", n, simBridge.Device().Ticks())
	return nil
}

func cmdReset(simBridge *sim.Bridge) error {
	if simBridge == nil {
		return fmt.Errorf("reset is only available on the sim bridge")
	}
	simBridge.Reset()
	fmt.Println("model reset")
	return nil
}

// parseRegister accepts a register map name or a numeric address.
func parseRegister(tok string) (uint8, error) {
	if info, ok := protocol.RegisterByName(tok); ok {
		return info.Addr, nil
	}
	v, err := strconv.ParseUint(tok, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown register %q (see 'map')", tok)
	}
	if v > 0x7F {
		return 0, fmt.Errorf("register address 0x%x exceeds the 7-bit field", v)
	}
	return uint8(v), nil
}

func parseUint(tok string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(tok, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", tok, err)
	}
	return v, nil
}

func registerLabel(addr uint8) string {
	if name := protocol.RegisterName(addr); name != "" {
		return name
	}
	return fmt.Sprintf("0x%02x (unmapped)", addr)
}

func printMap() {
	fmt.Println("\nRegister map:")
	for _, info := range protocol.Registers() {
		fmt.Printf("  0x%02x %-12s %s\n", info.Addr, info.Name, info.Desc)
	}
	fmt.Println()
}

func printHelp(isSim bool) {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  write <reg> <val> - Write a register (name or address)")
	fmt.Println("  out <mask>        - Set the 16-channel output-enable mask")
	fmt.Println("  pwm <mask>        - Set the 16-channel PWM-select mask")
	fmt.Println("  duty <val>        - Set the shared PWM duty cycle")
	fmt.Println("  map               - Show the register map")
	if isSim {
		fmt.Println("  regs              - Show the model's registers")
		fmt.Println("  outs              - Show the model's output bytes")
		fmt.Println("  tick [n]          - Advance the model n idle ticks")
		fmt.Println("  reset             - Pulse the model's reset")
	}
	fmt.Println("  help              - Show this help message")
	fmt.Println("  quit/exit/q       - Exit the program")
	fmt.Println()
}

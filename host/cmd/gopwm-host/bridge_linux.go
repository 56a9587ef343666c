//go:build linux

package main

import (
	"flag"
	"fmt"

	"gopwm/host/controller"
	"gopwm/host/gpiomem"
)

var (
	gpioClock  = flag.Uint("gpio-clock", 11, "BCM pin for the serial clock (gpiomem bridge)")
	gpioData   = flag.Uint("gpio-data", 10, "BCM pin for the serial data (gpiomem bridge)")
	gpioSelect = flag.Uint("gpio-select", 8, "BCM pin for the chip select (gpiomem bridge)")
	stepDelay  = flag.Duration("step-delay", gpiomem.DefaultStepDelay, "Per-step delay (gpiomem bridge)")
)

func openGPIOMemBridge() (controller.Bridge, error) {
	pins := gpiomem.Pins{
		Clock:   uint8(*gpioClock),
		Data:    uint8(*gpioData),
		SelectN: uint8(*gpioSelect),
	}
	b, err := gpiomem.Open(pins, *stepDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to open gpiomem bridge: %w", err)
	}
	return b, nil
}

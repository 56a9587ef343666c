//go:build !linux

package main

import (
	"fmt"

	"gopwm/host/controller"
)

func openGPIOMemBridge() (controller.Bridge, error) {
	return nil, fmt.Errorf("the gpiomem bridge is only available on linux")
}

//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"runtime"
)

// hostDevice fakes chip controls for the simulator. Reset ends the process,
// which is the closest a process gets to rebooting an MCU.
type hostDevice struct {
	logger *hostLogger
}

func (d *hostDevice) Reset(bootloader bool) {
	if d.logger != nil {
		d.logger.WriteLineString(fmt.Sprintf("device: reset (bootloader=%v)", bootloader))
	}
	os.Exit(0)
}

func (d *hostDevice) DebugBreak() {
	runtime.Breakpoint()
}

func (d *hostDevice) ID() uint32 {
	return 0x00100005
}

func (d *hostDevice) Model() string { return "HOSTSIM" }

func (d *hostDevice) ClockHz() uint32 { return 120_000_000 }

//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"device/arm"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// SYSINFO CHIP_ID register: [27:12] part number, [31:28] revision.
const sysinfoChipID = 0x40000000

type rp2Device struct{}

func (rp2Device) Reset(bootloader bool) {
	if bootloader {
		machine.EnterBootloader()
		return
	}
	arm.SystemReset()
}

func (rp2Device) DebugBreak() {
	arm.Asm("bkpt 0")
}

// ID reads CHIP_ID once with interrupts masked so the read cannot be torn
// by an ISR touching the same bus.
func (rp2Device) ID() uint32 {
	mask := arm.DisableInterrupts()
	id := (*volatile.Register32)(unsafe.Pointer(uintptr(sysinfoChipID))).Get()
	arm.EnableInterrupts(mask)
	return id
}

func (d rp2Device) Model() string {
	part := (d.ID() >> 12) & 0xFFFF
	if part == 0x0002 {
		return "RP2040"
	}
	return "RP2350"
}

func (rp2Device) ClockHz() uint32 {
	return machine.CPUFrequency()
}

// Package hal is the only contact point between the firmware and the
// hardware it runs on. Everything above it talks to these interfaces; the
// host build backs them with files, stdio and a simulated heap so the whole
// system runs as an ordinary process.
package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Serial is the raw console byte stream.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Flash provides raw access to non-volatile memory, shaped so a tinyfs
// filesystem can mount it directly.
type Flash interface {
	ReadAt(p []byte, off int64) (n int, err error)
	WriteAt(p []byte, off int64) (n int, err error)
	Size() int64
	WriteBlockSize() int64
	EraseBlockSize() int64
	EraseBlocks(start, len int64) error
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; second-level timers live in the
// time service.
type Time interface {
	Ticks() <-chan uint64
}

// Device exposes chip-level controls.
type Device interface {
	// Reset restarts the MCU; with bootloader set it lands in the ROM
	// bootloader instead of the application.
	Reset(bootloader bool)
	// DebugBreak traps into an attached debugger.
	DebugBreak()
	// ID reads the chip identification word. The read is a single shot
	// with interrupts masked, since on real parts it goes through ROM
	// code that must not be preempted.
	ID() uint32
	// Model names the MCU for humans.
	Model() string
	// ClockHz is the core clock frequency.
	ClockHz() uint32
}

// HeapRegion locates the C allocator arena for diagnostic walks.
type HeapRegion struct {
	// Start is the first heap byte (end of static data).
	Start uint32
	// End is the current program break.
	End uint32
	// FreeList is the address of the first free chunk, 0 if none.
	FreeList uint32
	// Max is the highest address the heap may grow to.
	Max uint32
}

// Heap exposes the allocator arena on platforms that have one to show.
type Heap interface {
	// Region returns the current arena bounds; ok=false when the platform
	// has no walkable allocator.
	Region() (HeapRegion, bool)
	// Word reads one aligned 32-bit word from the arena.
	Word(addr uint32) uint32
}

// HAL aggregates every platform surface the firmware uses.
type HAL interface {
	Logger() Logger
	Serial() Serial
	Flash() Flash
	Time() Time
	Device() Device
	Heap() Heap
}

//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	serial *hostSerial
	flash  *hostFlash
	t      *hostTime
	dev    *hostDevice
	heap   *hostHeap
}

// New returns a host HAL implementation: stdio serial, a file-backed flash
// image and a simulated allocator arena.
func New() HAL {
	logger := &hostLogger{w: os.Stderr}
	return &hostHAL{
		logger: logger,
		serial: &hostSerial{in: os.Stdin, out: os.Stdout},
		flash:  newHostFlash(),
		t:      newHostTime(),
		dev:    &hostDevice{logger: logger},
		heap:   newHostHeap(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Serial() Serial { return h.serial }
func (h *hostHAL) Flash() Flash   { return h.flash }
func (h *hostHAL) Time() Time     { return h.t }
func (h *hostHAL) Device() Device { return h.dev }
func (h *hostHAL) Heap() Heap     { return h.heap }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

package app

import (
	"fmt"
	"strings"

	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
)

// installPanicHandler dumps a panicking task to the HAL logger and parks
// the system. The console is the only operator surface, so there is nothing
// better to do than leave the trace on the wire.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("Smoothie Panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}
		select {}
	})
}

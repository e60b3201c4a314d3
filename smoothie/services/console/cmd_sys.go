package console

import (
	"strings"

	"github.com/ZzubbuzZ/Smoothie/internal/buildinfo"
	"github.com/ZzubbuzZ/Smoothie/smoothie/heapwalk"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
)

// cmdReset arms the deferred restart. The reply goes out immediately so the
// goodbye line reaches the wire before the device goes down.
func (s *Service) cmdReset(ctx *kernel.Context, _ string, out Stream) {
	out.Printf("Smoothie out. Peace. Rebooting in 5 seconds...\r\n")
	s.resetDelay = 5
}

func (s *Service) cmdDFU(ctx *kernel.Context, _ string, out Stream) {
	out.Printf("Entering boot mode...\r\n")
	if s.cfg.Device != nil {
		s.cfg.Device.Reset(true)
	}
}

func (s *Service) cmdBreak(ctx *kernel.Context, _ string, out Stream) {
	out.Printf("Entering MRI debug mode...\r\n")
	if s.cfg.Device != nil {
		s.cfg.Device.DebugBreak()
	}
}

func (s *Service) cmdVersion(ctx *kernel.Context, _ string, out Stream) {
	mcu := "unknown"
	clockMHz := uint32(0)
	if s.cfg.Device != nil {
		mcu = s.cfg.Device.Model()
		clockMHz = s.cfg.Device.ClockHz() / 1000000
	}
	out.Printf("Build version: %s, Build date: %s, MCU: %s, System Clock: %dMHz\r\n",
		buildinfo.Version, buildinfo.Date, mcu, clockMHz)
}

// cmdMem reports allocator state. With -v it also prints one line per
// chunk. The walk reads live allocator structures; it only runs between
// messages, when nothing else is allocating.
func (s *Service) cmdMem(ctx *kernel.Context, args string, out Stream) {
	token, _ := shiftToken(args)
	verbose := strings.ContainsAny(token, "Vv")

	if s.cfg.Heap == nil {
		out.Printf("Heap introspection not available\r\n")
		return
	}
	region, ok := s.cfg.Heap.Region()
	if !ok {
		out.Printf("Heap introspection not available\r\n")
		return
	}
	layout := heapwalk.Layout{
		HeapStart:    region.Start,
		FreeListHead: region.FreeList,
		HeapEnd:      region.End,
		MaxAddress:   region.Max,
	}

	out.Printf("Unused Heap: %d bytes\r\n", layout.UnusedSize())
	out.Printf("Used Heap Size: %d\n", layout.UsedSize())

	used, free := heapwalk.Walk(s.cfg.Heap, layout, func(c heapwalk.Chunk) {
		if !verbose {
			return
		}
		marker := ""
		if c.Free {
			marker = "CHUNK FREE"
		}
		out.Printf("  Chunk: %d  Address: 0x%08X  Size: %d  %s\n", c.Seq, c.Addr, c.Size, marker)
	})
	out.Printf("Allocated: %d, Free: %d\r\n", used, free)
}

func (s *Service) cmdHelp(ctx *kernel.Context, _ string, out Stream) {
	out.Printf("Commands:\r\n")
	out.Printf("version\r\n")
	out.Printf("mem [-v]\r\n")
	out.Printf("ls [folder]\r\n")
	out.Printf("cd folder\r\n")
	out.Printf("pwd\r\n")
	out.Printf("cat file [limit]\r\n")
	out.Printf("rm file\r\n")
	out.Printf("reset - reset smoothie\r\n")
	out.Printf("dfu - enter dfu boot loader\r\n")
	out.Printf("break - break into debugger\r\n")
	out.Printf("get temp [bed|hotend]\r\n")
	out.Printf("set_temp bed|hotend 185\r\n")
	out.Printf("get pos\r\n")
}

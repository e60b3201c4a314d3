package console

import (
	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
)

type handler func(ctx *kernel.Context, args string, out Stream)

// entry binds a keyword fingerprint to its handler. The table ends with a
// sentinel whose fingerprint is 0 and whose handler is nil; lookup scans
// linearly and stops at the sentinel or the first match.
type entry struct {
	cs uint16
	fn handler
}

func (s *Service) commandTable() []entry {
	return []entry{
		{checksum.Of("ls"), s.cmdLS},
		{checksum.Of("cd"), s.cmdCD},
		{checksum.Of("pwd"), s.cmdPWD},
		{checksum.Of("cat"), s.cmdCat},
		{checksum.Of("rm"), s.cmdRM},
		{checksum.Of("reset"), s.cmdReset},
		{checksum.Of("dfu"), s.cmdDFU},
		{checksum.Of("break"), s.cmdBreak},
		{checksum.Of("help"), s.cmdHelp},
		{checksum.Of("version"), s.cmdVersion},
		{checksum.Of("mem"), s.cmdMem},
		{checksum.Of("get"), s.cmdGet},
		{checksum.Of("set_temp"), s.cmdSetTemp},

		// unknown command
		{0, nil},
	}
}

// Package logger is the client side of the log service.
package logger

import (
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Diagnostics must
// never wedge the task that emits them.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	b := proto.LogLinePayload(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), b, kernel.Capability{})
}

package console

import (
	"fmt"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Stream is the output sink handed to every command handler.
type Stream interface {
	Printf(format string, args ...interface{})
}

// stream picks the reply capability carried by the triggering message so
// output goes back to whoever sent the line, falling back to the default
// serial port.
func (s *Service) stream(ctx *kernel.Context, reply kernel.Capability) Stream {
	to := reply
	if !to.Valid() {
		to = s.cfg.Serial
	}
	return &ipcStream{ctx: ctx, to: to}
}

// ipcStream writes formatted text as MsgSerialWrite messages, chunked to
// the message payload limit.
type ipcStream struct {
	ctx *kernel.Context
	to  kernel.Capability
}

func (w *ipcStream) Printf(format string, args ...interface{}) {
	if !w.to.Valid() {
		return
	}
	b := []byte(fmt.Sprintf(format, args...))
	for len(b) > 0 {
		chunk := b
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := w.ctx.SendToCapRetry(w.to, uint16(proto.MsgSerialWrite),
			proto.SerialWritePayload(chunk), kernel.Capability{}, 100)
		if res != kernel.SendOK {
			return
		}
		b = b[len(chunk):]
	}
}

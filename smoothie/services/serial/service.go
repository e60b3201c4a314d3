// Package serial frames UART bytes into lines for the command pipeline and
// writes console output back to the wire.
package serial

import (
	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Service reads the HAL serial port, splits the byte stream on CR or LF
// and forwards each complete line as MsgConsoleLine to the sink capability.
// Every forwarded line carries a send-restricted capability back to this
// service, so whoever answers the line can stream MsgSerialWrite output to
// the same port.
type Service struct {
	serial hal.Serial
	ep     kernel.Capability
	sink   kernel.Capability

	writeCapXfer kernel.Capability
}

func New(serial hal.Serial, ep, sink kernel.Capability) *Service {
	return &Service{
		serial:       serial,
		ep:           ep,
		sink:         sink,
		writeCapXfer: ep.Restrict(kernel.RightSend),
	}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.serial != nil {
		go s.readLoop(ctx)
	}

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgSerialWrite {
			continue
		}
		if s.serial == nil || len(msg.Payload()) == 0 {
			continue
		}
		_, _ = s.serial.Write(msg.Payload())
	}
}

func (s *Service) readLoop(ctx *kernel.Context) {
	buf := make([]byte, 64)
	line := make([]byte, 0, kernel.MaxMessageBytes)
	for {
		n, err := s.serial.Read(buf)
		for _, b := range buf[:n] {
			switch b {
			case '\r', '\n':
				if len(line) > 0 {
					s.emitLine(ctx, line)
					line = line[:0]
				}
			default:
				// Overlong lines are truncated rather than split.
				if len(line) < kernel.MaxMessageBytes {
					line = append(line, b)
				}
			}
		}
		if err != nil {
			ctx.BlockOnTick()
		}
	}
}

func (s *Service) emitLine(ctx *kernel.Context, line []byte) {
	res := ctx.SendToCapRetry(s.sink, uint16(proto.MsgConsoleLine),
		proto.ConsoleLinePayload(string(line)), s.writeCapXfer, 100)
	_ = res
}

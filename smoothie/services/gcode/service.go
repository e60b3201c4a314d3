// Package gcode screens incoming serial lines for g-code before they reach
// the console. File transfer codes M20 and M30 are translated to console
// control codes, motion words update the published machine position, and
// anything that is not g-code passes through untouched.
package gcode

import (
	"strconv"
	"strings"

	pubdatacli "github.com/ZzubbuzZ/Smoothie/smoothie/client/pubdata"
	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

var (
	robotCS           = checksum.Of("robot")
	currentPositionCS = checksum.Of("current_position")
)

type Service struct {
	ep         kernel.Capability
	consoleCap kernel.Capability
	data       *pubdatacli.Client
}

func New(ep, consoleCap, dataCap kernel.Capability) *Service {
	return &Service{ep: ep, consoleCap: consoleCap, data: pubdatacli.New(dataCap)}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgConsoleLine {
			continue
		}
		s.handleLine(ctx, proto.DecodeConsoleLinePayload(msg.Payload()), msg.Cap)
	}
}

func (s *Service) handleLine(ctx *kernel.Context, line string, reply kernel.Capability) {
	trimmed := strings.TrimLeft(line, " \t")
	letter, code, rest, ok := splitWord(trimmed)
	if !ok {
		s.forward(ctx, line, reply)
		return
	}

	switch letter {
	case 'M', 'm':
		switch code {
		case 20:
			s.control(ctx, proto.ControlListFiles, "", reply)
		case 30:
			s.control(ctx, proto.ControlRemoveFile, strings.TrimSpace(rest), reply)
		}
	case 'G', 'g':
		switch code {
		case 0, 1, 92:
			s.applyMotion(ctx, code, rest)
		}
	}
	// Every other g-code word is consumed without effect.
}

// splitWord parses a leading g-code word ("G1", "M30"). ok is false when
// the line does not start with one, meaning the line belongs to the console.
func splitWord(line string) (letter byte, code int, rest string, ok bool) {
	if len(line) < 2 {
		return 0, 0, "", false
	}
	letter = line[0]
	switch letter {
	case 'G', 'g', 'M', 'm':
	default:
		return 0, 0, "", false
	}
	i := 1
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 1 {
		return 0, 0, "", false
	}
	code, err := strconv.Atoi(line[1:i])
	if err != nil {
		return 0, 0, "", false
	}
	return letter, code, line[i:], true
}

func (s *Service) forward(ctx *kernel.Context, line string, reply kernel.Capability) {
	_ = ctx.SendToCapRetry(s.consoleCap, uint16(proto.MsgConsoleLine),
		proto.ConsoleLinePayload(line), reply, 100)
}

func (s *Service) control(ctx *kernel.Context, code uint16, arg string, reply kernel.Capability) {
	_ = ctx.SendToCapRetry(s.consoleCap, uint16(proto.MsgControlCode),
		proto.ControlCodePayload(code, arg), reply, 100)
}

// applyMotion folds the axis words of a motion command into the published
// position. G0 and G1 target absolute coordinates; G92 redefines the
// current position, all axes zero when no words are given.
func (s *Service) applyMotion(ctx *kernel.Context, code int, args string) {
	x, y, z := s.currentPosition(ctx)

	ax, ay, az, any := parseAxes(args)
	if code == 92 && !any {
		x, y, z = 0, 0, 0
	} else {
		if ax != nil {
			x = *ax
		}
		if ay != nil {
			y = *ay
		}
		if az != nil {
			z = *az
		}
	}

	_, _ = s.data.Set(ctx, robotCS, currentPositionCS, 0, proto.PositionValue(x, y, z))
}

func (s *Service) currentPosition(ctx *kernel.Context) (x, y, z float32) {
	value, found, err := s.data.Get(ctx, robotCS, currentPositionCS, 0)
	if err != nil || !found {
		return 0, 0, 0
	}
	x, y, z, ok := proto.DecodePositionValue(value)
	if !ok {
		return 0, 0, 0
	}
	return x, y, z
}

func parseAxes(args string) (x, y, z *float32, any bool) {
	fields := strings.Fields(args)
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(f[1:], 32)
		if err != nil {
			continue
		}
		fv := float32(v)
		switch f[0] {
		case 'X', 'x':
			x, any = &fv, true
		case 'Y', 'y':
			y, any = &fv, true
		case 'Z', 'z':
			z, any = &fv, true
		}
	}
	return x, y, z, any
}

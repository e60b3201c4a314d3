// Package console is the diagnostic command console. It receives complete
// input lines, fingerprints the first keyword and dispatches to a fixed
// command table; machine control codes and second ticks arrive on the same
// endpoint and share the session state.
package console

import (
	"strings"

	"github.com/ZzubbuzZ/Smoothie/hal"
	loggercli "github.com/ZzubbuzZ/Smoothie/smoothie/client/logger"
	pubdatacli "github.com/ZzubbuzZ/Smoothie/smoothie/client/pubdata"
	timecli "github.com/ZzubbuzZ/Smoothie/smoothie/client/time"
	vfscli "github.com/ZzubbuzZ/Smoothie/smoothie/client/vfs"
	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Config wires the console to its collaborators. In must carry the receive
// right; the rest are send capabilities to the owning services. Zero
// capabilities degrade the matching commands instead of failing the whole
// console.
type Config struct {
	In     kernel.Capability
	Serial kernel.Capability
	VFS    kernel.Capability
	Data   kernel.Capability
	Log    kernel.Capability
	Time   kernel.Capability

	Device hal.Device
	Heap   hal.Heap
}

type Service struct {
	cfg  Config
	vfs  *vfscli.Client
	data *pubdatacli.Client

	table []entry

	// Session state. Mutated only from the Run loop.
	cwd        string
	resetDelay int
}

func New(cfg Config) *Service {
	s := &Service{
		cfg:  cfg,
		vfs:  vfscli.New(cfg.VFS),
		data: pubdatacli.New(cfg.Data),
		cwd:  "/",
	}
	s.table = s.commandTable()
	return s
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.cfg.In)
	if !ok {
		return
	}
	if s.cfg.Time.Valid() {
		if err := timecli.SubscribeSeconds(ctx, s.cfg.Time, s.cfg.In.Restrict(kernel.RightSend)); err != nil {
			s.log(ctx, "console: "+err.Error())
		}
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgConsoleLine:
			s.handleLine(ctx, proto.DecodeConsoleLinePayload(msg.Payload()), s.stream(ctx, msg.Cap))
		case proto.MsgControlCode:
			code, arg, ok := proto.DecodeControlCodePayload(msg.Payload())
			if !ok {
				continue
			}
			s.handleControl(ctx, code, arg, s.stream(ctx, msg.Cap))
		case proto.MsgSecondTick:
			s.onSecondTick()
		}
	}
}

// handleLine fingerprints the first keyword and runs the matching table
// entry. Comment lines never reach the table and an unknown fingerprint is
// a silent no-op.
func (s *Service) handleLine(ctx *kernel.Context, line string, out Stream) {
	if strings.HasPrefix(line, ";") {
		return
	}
	keyword, args := splitCommand(line)
	s.dispatch(ctx, checksum.Of(keyword), args, out)
}

func (s *Service) dispatch(ctx *kernel.Context, cs uint16, args string, out Stream) bool {
	for i := range s.table {
		e := &s.table[i]
		if e.fn == nil {
			break
		}
		if e.cs == cs {
			e.fn(ctx, args, out)
			return true
		}
	}
	return false
}

// handleControl services machine-generated control codes. They reuse the
// filesystem handlers directly, bypassing the keyword table.
func (s *Service) handleControl(ctx *kernel.Context, code uint16, arg string, out Stream) {
	switch code {
	case proto.ControlListFiles:
		out.Printf("Begin file list\r\n")
		s.cmdLS(ctx, "/sd", out)
		out.Printf("End file list\r\n")
	case proto.ControlRemoveFile:
		s.cmdRM(ctx, "/sd/"+arg, out)
	}
}

// onSecondTick drives the deferred reset. The device action fires exactly
// on the 1 to 0 transition; there is no way to cancel an armed countdown.
func (s *Service) onSecondTick() {
	if s.resetDelay > 0 {
		s.resetDelay--
		if s.resetDelay == 0 && s.cfg.Device != nil {
			s.cfg.Device.Reset(false)
		}
	}
}

func (s *Service) log(ctx *kernel.Context, line string) {
	if !s.cfg.Log.Valid() {
		return
	}
	_ = loggercli.Log(ctx, s.cfg.Log, line)
}

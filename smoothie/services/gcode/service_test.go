package gcode

import (
	"testing"
	"time"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/modules/robot"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
	pubdatasvc "github.com/ZzubbuzZ/Smoothie/smoothie/services/pubdata"
)

func TestSplitWord(t *testing.T) {
	cases := []struct {
		line   string
		letter byte
		code   int
		rest   string
		ok     bool
	}{
		{"G1 X10", 'G', 1, " X10", true},
		{"M30 file.gco", 'M', 30, " file.gco", true},
		{"g92", 'g', 92, "", true},
		{"pwd", 0, 0, "", false},
		{"M", 0, 0, "", false},
		{"Mx", 0, 0, "", false},
		{"", 0, 0, "", false},
	}
	for _, c := range cases {
		letter, code, rest, ok := splitWord(c.line)
		if ok != c.ok || letter != c.letter || code != c.code || rest != c.rest {
			t.Errorf("splitWord(%q) = (%q, %d, %q, %v), want (%q, %d, %q, %v)",
				c.line, letter, code, rest, ok, c.letter, c.code, c.rest, c.ok)
		}
	}
}

func TestParseAxes(t *testing.T) {
	x, y, z, any := parseAxes(" X10 Z-1.5")
	if !any || x == nil || *x != 10 || y != nil || z == nil || *z != -1.5 {
		t.Fatalf("parseAxes: x=%v y=%v z=%v any=%v", x, y, z, any)
	}
	_, _, _, any = parseAxes(" F3000")
	if any {
		t.Fatal("feedrate word parsed as an axis")
	}
}

type taskFunc func(ctx *kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

type routerEnv struct {
	k       *kernel.Kernel
	lineCap kernel.Capability // send side of the router endpoint
	conRecv kernel.Capability // messages the router forwards to the console
	rob     *robot.Robot
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	k := kernel.New()
	gcodeIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	conIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	dataIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	rob := robot.New()
	data := pubdatasvc.New(dataIn)
	data.Register(robot.Domain, rob)

	k.AddTask(data)
	k.AddTask(New(gcodeIn, conIn.Restrict(kernel.RightSend), dataIn.Restrict(kernel.RightSend)))

	stop := make(chan struct{})
	go func() {
		seq := uint64(1)
		for {
			select {
			case <-stop:
				return
			default:
			}
			k.TickTo(seq)
			seq++
			time.Sleep(time.Millisecond)
		}
	}()
	t.Cleanup(func() { close(stop) })

	return &routerEnv{
		k:       k,
		lineCap: gcodeIn.Restrict(kernel.RightSend),
		conRecv: conIn.Restrict(kernel.RightRecv),
		rob:     rob,
	}
}

func (e *routerEnv) run(t *testing.T, fn func(ctx *kernel.Context, con <-chan kernel.Message)) {
	t.Helper()
	done := make(chan struct{})
	e.k.AddTask(taskFunc(func(ctx *kernel.Context) {
		defer close(done)
		con, ok := ctx.RecvChan(e.conRecv)
		if !ok {
			t.Error("console receive channel unavailable")
			return
		}
		fn(ctx, con)
	}))
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("test task timed out")
	}
}

func (e *routerEnv) sendLine(t *testing.T, ctx *kernel.Context, line string) {
	t.Helper()
	res := ctx.SendToCapRetry(e.lineCap, uint16(proto.MsgConsoleLine),
		proto.ConsoleLinePayload(line), kernel.Capability{}, 1000)
	if res != kernel.SendOK {
		t.Errorf("send line %q: %s", line, res)
	}
}

func recvMsg(t *testing.T, ch <-chan kernel.Message) (kernel.Message, bool) {
	t.Helper()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(5 * time.Second):
		t.Error("timed out waiting for forwarded message")
		return kernel.Message{}, false
	}
}

func TestM20BecomesListControl(t *testing.T) {
	e := newRouterEnv(t)
	e.run(t, func(ctx *kernel.Context, con <-chan kernel.Message) {
		e.sendLine(t, ctx, "M20")
		msg, ok := recvMsg(t, con)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgControlCode {
			t.Errorf("kind = %v, want control code", proto.Kind(msg.Kind))
			return
		}
		code, arg, ok := proto.DecodeControlCodePayload(msg.Payload())
		if !ok || code != proto.ControlListFiles || arg != "" {
			t.Errorf("control = (%d, %q)", code, arg)
		}
	})
}

func TestM30BecomesRemoveControl(t *testing.T) {
	e := newRouterEnv(t)
	e.run(t, func(ctx *kernel.Context, con <-chan kernel.Message) {
		e.sendLine(t, ctx, "M30 part.gco")
		msg, ok := recvMsg(t, con)
		if !ok {
			return
		}
		code, arg, ok := proto.DecodeControlCodePayload(msg.Payload())
		if !ok || code != proto.ControlRemoveFile || arg != "part.gco" {
			t.Errorf("control = (%d, %q)", code, arg)
		}
	})
}

func TestNonGcodeLinesPassThrough(t *testing.T) {
	e := newRouterEnv(t)
	e.run(t, func(ctx *kernel.Context, con <-chan kernel.Message) {
		e.sendLine(t, ctx, "ls /sd")
		msg, ok := recvMsg(t, con)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgConsoleLine {
			t.Errorf("kind = %v, want console line", proto.Kind(msg.Kind))
			return
		}
		if got := proto.DecodeConsoleLinePayload(msg.Payload()); got != "ls /sd" {
			t.Errorf("forwarded line %q", got)
		}
	})
}

func TestMotionUpdatesPublishedPosition(t *testing.T) {
	e := newRouterEnv(t)
	e.run(t, func(ctx *kernel.Context, con <-chan kernel.Message) {
		e.sendLine(t, ctx, "G1 X10 Y5")
		e.sendLine(t, ctx, "G1 Z2.5")
		// A follow-up pass-through line proves the moves were processed.
		e.sendLine(t, ctx, "done")
		if _, ok := recvMsg(t, con); !ok {
			return
		}

		value, found := e.rob.Get(robotItem(), 0)
		if !found {
			t.Error("position not published")
			return
		}
		x, y, z, _ := proto.DecodePositionValue(value)
		if x != 10 || y != 5 || z != 2.5 {
			t.Errorf("position = %v,%v,%v, want 10,5,2.5", x, y, z)
		}
	})
}

func TestG92WithoutWordsZeroesPosition(t *testing.T) {
	e := newRouterEnv(t)
	e.run(t, func(ctx *kernel.Context, con <-chan kernel.Message) {
		e.sendLine(t, ctx, "G1 X10 Y5 Z1")
		e.sendLine(t, ctx, "G92")
		e.sendLine(t, ctx, "done")
		if _, ok := recvMsg(t, con); !ok {
			return
		}

		value, _ := e.rob.Get(robotItem(), 0)
		x, y, z, _ := proto.DecodePositionValue(value)
		if x != 0 || y != 0 || z != 0 {
			t.Errorf("position after G92 = %v,%v,%v, want zeros", x, y, z)
		}
	})
}

func robotItem() uint16 { return currentPositionCS }

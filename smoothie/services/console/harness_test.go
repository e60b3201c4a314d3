package console

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/modules/robot"
	"github.com/ZzubbuzZ/Smoothie/smoothie/modules/tempcontrol"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
	pubdatasvc "github.com/ZzubbuzZ/Smoothie/smoothie/services/pubdata"
	vfssvc "github.com/ZzubbuzZ/Smoothie/smoothie/services/vfs"
)

type taskFunc func(ctx *kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

type fakeDevice struct {
	resets     atomic.Int32
	breaks     atomic.Int32
	bootloader atomic.Bool
}

func (d *fakeDevice) Reset(bootloader bool) {
	if bootloader {
		d.bootloader.Store(true)
	}
	d.resets.Add(1)
}
func (d *fakeDevice) DebugBreak()     { d.breaks.Add(1) }
func (d *fakeDevice) ID() uint32      { return 0x00100005 }
func (d *fakeDevice) Model() string   { return "TESTMCU" }
func (d *fakeDevice) ClockHz() uint32 { return 120000000 }

// fakeHeap is a frozen arena image: raw sizes 32, 48, 24, 64 with the
// second and fourth chunk free.
type fakeHeap struct {
	words  map[uint32]uint32
	region hal.HeapRegion
}

const heapBase = uint32(0x10000000)

func newFakeHeap() *fakeHeap {
	h := &fakeHeap{words: map[uint32]uint32{
		heapBase:       32,
		heapBase + 32:  48,
		heapBase + 36:  heapBase + 104, // next free after chunk 2
		heapBase + 80:  24,
		heapBase + 104: 64,
		heapBase + 108: 0, // end of free list
	}}
	h.region = hal.HeapRegion{
		Start:    heapBase,
		End:      heapBase + 168,
		FreeList: heapBase + 32,
		Max:      heapBase + 0x8000,
	}
	return h
}

func (h *fakeHeap) Region() (hal.HeapRegion, bool) { return h.region, true }
func (h *fakeHeap) Word(addr uint32) uint32        { return h.words[addr] }

// env runs a console against a real vfs service over an in-memory
// filesystem and a real pubdata service with hotend/bed controllers and a
// robot. Output lands on a sink endpoint the test task drains.
type env struct {
	k *kernel.Kernel

	conCap   kernel.Capability // send side of the console endpoint
	sinkXfer kernel.Capability // transferred with every line as the reply stream
	sinkRecv kernel.Capability

	dev  *fakeDevice
	bank *tempcontrol.Bank
}

func newEnv(t *testing.T, seed func(fs *vfssvc.MemFS)) *env {
	t.Helper()

	k := kernel.New()
	conIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	vfsIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	dataIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	sink := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	fs := vfssvc.NewMemFS()
	fs.Mkdir("/sd")
	if seed != nil {
		seed(fs)
	}

	bank := tempcontrol.NewBank("hotend", "bed")
	data := pubdatasvc.New(dataIn)
	data.Register(tempcontrol.Domain, bank)
	data.Register(robot.Domain, robot.New())

	dev := &fakeDevice{}
	svc := New(Config{
		In:     conIn,
		Serial: sink.Restrict(kernel.RightSend),
		VFS:    vfsIn.Restrict(kernel.RightSend),
		Data:   dataIn.Restrict(kernel.RightSend),
		Device: dev,
		Heap:   newFakeHeap(),
	})

	k.AddTask(vfssvc.New(vfsIn, fs, nil))
	k.AddTask(data)
	k.AddTask(svc)

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

	return &env{
		k:        k,
		conCap:   conIn.Restrict(kernel.RightSend),
		sinkXfer: sink.Restrict(kernel.RightSend),
		sinkRecv: sink.Restrict(kernel.RightRecv),
		dev:      dev,
		bank:     bank,
	}
}

// run executes fn inside a kernel task with the sink's receive channel and
// waits for it to finish. fn must use t.Errorf, never t.Fatalf.
func (e *env) run(t *testing.T, fn func(ctx *kernel.Context, out <-chan kernel.Message)) {
	t.Helper()
	done := make(chan struct{})
	e.k.AddTask(taskFunc(func(ctx *kernel.Context) {
		defer close(done)
		out, ok := ctx.RecvChan(e.sinkRecv)
		if !ok {
			t.Error("sink receive channel unavailable")
			return
		}
		fn(ctx, out)
	}))
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("test task timed out")
	}
}

func (e *env) sendLine(t *testing.T, ctx *kernel.Context, line string) {
	t.Helper()
	res := ctx.SendToCapRetry(e.conCap, uint16(proto.MsgConsoleLine),
		proto.ConsoleLinePayload(line), e.sinkXfer, 1000)
	if res != kernel.SendOK {
		t.Errorf("send line %q: %s", line, res)
	}
}

func (e *env) sendControl(t *testing.T, ctx *kernel.Context, code uint16, arg string) {
	t.Helper()
	res := ctx.SendToCapRetry(e.conCap, uint16(proto.MsgControlCode),
		proto.ControlCodePayload(code, arg), e.sinkXfer, 1000)
	if res != kernel.SendOK {
		t.Errorf("send control %d: %s", code, res)
	}
}

func (e *env) sendSecondTick(t *testing.T, ctx *kernel.Context, seconds uint32) {
	t.Helper()
	res := ctx.SendToCapRetry(e.conCap, uint16(proto.MsgSecondTick),
		proto.SecondTickPayload(seconds), kernel.Capability{}, 1000)
	if res != kernel.SendOK {
		t.Errorf("send second tick: %s", res)
	}
}

func timeAfter() <-chan time.Time { return time.After(5 * time.Second) }

// collectUntil accumulates serial output until want shows up. It reports
// everything gathered so far.
func collectUntil(t *testing.T, out <-chan kernel.Message, want string) (string, bool) {
	t.Helper()
	var b strings.Builder
	deadline := time.After(5 * time.Second)
	for {
		if strings.Contains(b.String(), want) {
			return b.String(), true
		}
		select {
		case msg := <-out:
			if proto.Kind(msg.Kind) == proto.MsgSerialWrite {
				b.Write(msg.Payload())
			}
		case <-deadline:
			t.Errorf("timed out waiting for %q, collected %q", want, b.String())
			return b.String(), false
		}
	}
}

// sync flushes the console's queue by running pwd and waiting for its
// output. Returns everything printed before the pwd reply.
func (e *env) sync(t *testing.T, ctx *kernel.Context, out <-chan kernel.Message, cwd string) (string, bool) {
	t.Helper()
	e.sendLine(t, ctx, "pwd")
	got, ok := collectUntil(t, out, cwd+"\r\n")
	if !ok {
		return got, false
	}
	return strings.TrimSuffix(got, cwd+"\r\n"), true
}

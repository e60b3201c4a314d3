package timesvc

import (
	"testing"
	"time"

	timecli "github.com/ZzubbuzZ/Smoothie/smoothie/client/time"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

type taskFunc func(ctx *kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

func TestSecondTicksReachSubscribers(t *testing.T) {
	k := kernel.New()
	timeIn := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	sub := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(New(5, timeIn))

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

	done := make(chan struct{})
	k.AddTask(taskFunc(func(ctx *kernel.Context) {
		defer close(done)
		ch, ok := ctx.RecvChan(sub.Restrict(kernel.RightRecv))
		if !ok {
			t.Error("subscriber channel unavailable")
			return
		}
		if err := timecli.SubscribeSeconds(ctx, timeIn.Restrict(kernel.RightSend),
			sub.Restrict(kernel.RightSend)); err != nil {
			t.Errorf("subscribe: %v", err)
			return
		}

		var last uint32
		for i := 0; i < 3; i++ {
			select {
			case msg := <-ch:
				if proto.Kind(msg.Kind) != proto.MsgSecondTick {
					t.Errorf("kind = %v, want second tick", proto.Kind(msg.Kind))
					return
				}
				seconds, ok := proto.DecodeSecondTickPayload(msg.Payload())
				if !ok {
					t.Error("bad second tick payload")
					return
				}
				if seconds <= last {
					t.Errorf("seconds went %d after %d", seconds, last)
					return
				}
				last = seconds
			case <-time.After(5 * time.Second):
				t.Error("timed out waiting for second tick")
				return
			}
		}
	}))
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("test task timed out")
	}
}

// Package timesvc divides the millisecond kernel tick down to seconds and
// fans a MsgSecondTick out to every subscriber.
package timesvc

import (
	"sync"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

const maxSubscribers = 16

type Service struct {
	hz uint32
	ep kernel.Capability

	mu   sync.Mutex
	subs []kernel.Capability
}

// New creates a time service. hz is the kernel tick rate in ticks per
// second and must be nonzero.
func New(hz uint32, ep kernel.Capability) *Service {
	if hz == 0 {
		hz = 1
	}
	return &Service{hz: hz, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	go s.tickLoop(ctx)

	for msg := range ch {
		if msg.Kind != uint16(proto.MsgTickSubscribe) {
			continue
		}
		if !msg.Cap.Valid() {
			continue
		}
		s.subscribe(msg.Cap)
	}
}

func (s *Service) subscribe(cap kernel.Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if sub == cap {
			return
		}
	}
	if len(s.subs) >= maxSubscribers {
		return
	}
	s.subs = append(s.subs, cap)
}

func (s *Service) snapshot() []kernel.Capability {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]kernel.Capability, len(s.subs))
	copy(out, s.subs)
	return out
}

func (s *Service) tickLoop(ctx *kernel.Context) {
	last := ctx.NowTick()
	boundary := last + uint64(s.hz)
	var seconds uint32
	for {
		last = ctx.WaitTick(last)
		if last < boundary {
			continue
		}
		// Ticks can jump past a boundary under load. Rebase instead of
		// bursting catch-up seconds at the subscribers.
		boundary = last + uint64(s.hz)
		seconds++
		payload := proto.SecondTickPayload(seconds)
		for _, sub := range s.snapshot() {
			// Subscribers that cannot keep up lose ticks rather than
			// stalling the clock.
			_ = ctx.SendToCapResult(sub, uint16(proto.MsgSecondTick), payload, kernel.Capability{})
		}
	}
}

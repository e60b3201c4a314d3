// Package pubdata routes public-data requests to the module that owns the
// addressed domain. Modules register under a keyword fingerprint and exchange
// values as opaque bytes; the router never interprets them.
package pubdata

import (
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Provider answers get and set requests for one domain.
//
// Get returns the encoded value for (item, field), or found=false when the
// provider does not publish that pair. Set applies a value and reports
// whether it was accepted. field 0 addresses the provider's default field.
type Provider interface {
	Get(item, field uint16) (value []byte, found bool)
	Set(item, field uint16, value []byte) bool
}

// Ticker is implemented by providers that want a callback once per second.
type Ticker interface {
	Tick(seconds uint32)
}

type registration struct {
	domain   uint16
	provider Provider
}

type Service struct {
	ep      kernel.Capability
	timeCap kernel.Capability
	regs    []registration
}

func New(ep kernel.Capability) *Service {
	return &Service{ep: ep}
}

// SubscribeTicks makes the service request MsgSecondTick delivery from the
// time service once it is running, so Ticker providers advance. Call before
// Run.
func (s *Service) SubscribeTicks(timeCap kernel.Capability) {
	s.timeCap = timeCap
}

// Register binds a provider to a domain fingerprint. Call before Run; the
// registry is fixed once the service is running.
func (s *Service) Register(domain uint16, p Provider) {
	s.regs = append(s.regs, registration{domain: domain, provider: p})
}

func (s *Service) lookup(domain uint16) Provider {
	for _, r := range s.regs {
		if r.domain == domain {
			return r.provider
		}
	}
	return nil
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.timeCap.Valid() {
		_ = ctx.SendToCapRetry(s.timeCap, uint16(proto.MsgTickSubscribe),
			proto.TickSubscribePayload(), s.ep.Restrict(kernel.RightSend), 16)
	}
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgDataGet:
			s.handleGet(ctx, &msg)
		case proto.MsgDataSet:
			s.handleSet(ctx, &msg)
		case proto.MsgSecondTick:
			seconds, ok := proto.DecodeSecondTickPayload(msg.Payload())
			if !ok {
				continue
			}
			for _, r := range s.regs {
				if t, ok := r.provider.(Ticker); ok {
					t.Tick(seconds)
				}
			}
		}
	}
}

func (s *Service) handleGet(ctx *kernel.Context, msg *kernel.Message) {
	reqID, domain, item, field, ok := proto.DecodeDataGetPayload(msg.Payload())
	if !ok || !msg.Cap.Valid() {
		return
	}
	var value []byte
	var found bool
	if p := s.lookup(domain); p != nil {
		value, found = p.Get(item, field)
	}
	s.send(ctx, msg.Cap, proto.MsgDataGetResp, proto.DataGetRespPayload(reqID, found, value))
}

func (s *Service) handleSet(ctx *kernel.Context, msg *kernel.Message) {
	reqID, domain, item, field, value, ok := proto.DecodeDataSetPayload(msg.Payload())
	if !ok || !msg.Cap.Valid() {
		return
	}
	var applied bool
	if p := s.lookup(domain); p != nil {
		applied = p.Set(item, field, value)
	}
	s.send(ctx, msg.Cap, proto.MsgDataSetResp, proto.DataSetRespPayload(reqID, applied))
}

func (s *Service) send(ctx *kernel.Context, to kernel.Capability, kind proto.Kind, payload []byte) {
	for {
		res := ctx.SendToCapResult(to, uint16(kind), payload, kernel.Capability{})
		if res != kernel.SendErrQueueFull {
			return
		}
		ctx.BlockOnTick()
	}
}

// Package pubdata is the client side of the public-data exchange: blocking
// get/set of module state addressed by fingerprint triples.
package pubdata

import (
	"errors"
	"fmt"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

type Client struct {
	dataCap kernel.Capability

	replyCapXfer kernel.Capability
	replyCh      <-chan kernel.Message

	nextRequestID uint32
}

func New(dataCap kernel.Capability) *Client {
	return &Client{dataCap: dataCap, nextRequestID: 1}
}

func (c *Client) ensureReply(ctx *kernel.Context) error {
	if c.replyCh != nil {
		return nil
	}

	ep := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !ep.Valid() {
		return errors.New("pubdata client: failed to allocate reply endpoint")
	}
	ch, ok := ctx.RecvChan(ep.Restrict(kernel.RightRecv))
	if !ok {
		return errors.New("pubdata client: failed to receive from reply endpoint")
	}

	c.replyCapXfer = ep.Restrict(kernel.RightSend)
	c.replyCh = ch
	return nil
}

func (c *Client) nextID() uint32 {
	id := c.nextRequestID
	c.nextRequestID++
	if c.nextRequestID == 0 {
		c.nextRequestID = 1
	}
	return id
}

func (c *Client) send(ctx *kernel.Context, kind proto.Kind, payload []byte) error {
	for {
		res := ctx.SendToCapResult(c.dataCap, uint16(kind), payload, c.replyCapXfer)
		switch res {
		case kernel.SendOK:
			return nil
		case kernel.SendErrQueueFull:
			ctx.BlockOnTick()
		default:
			return fmt.Errorf("pubdata client send %s: %s", kind, res)
		}
	}
}

// Get fetches the value published under (domain, item, field). found=false
// means no module answers for that triple.
func (c *Client) Get(ctx *kernel.Context, domain, item, field uint16) (value []byte, found bool, err error) {
	if err := c.ensureReply(ctx); err != nil {
		return nil, false, err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgDataGet, proto.DataGetPayload(reqID, domain, item, field)); err != nil {
		return nil, false, err
	}

	for {
		msg := <-c.replyCh
		if proto.Kind(msg.Kind) != proto.MsgDataGetResp {
			continue
		}
		gotID, found, data, ok := proto.DecodeDataGetRespPayload(msg.Payload())
		if !ok || gotID != reqID {
			continue
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, found, nil
	}
}

// Set writes value under (domain, item, field). applied=false means no
// module accepted the write.
func (c *Client) Set(ctx *kernel.Context, domain, item, field uint16, value []byte) (applied bool, err error) {
	if err := c.ensureReply(ctx); err != nil {
		return false, err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgDataSet, proto.DataSetPayload(reqID, domain, item, field, value)); err != nil {
		return false, err
	}

	for {
		msg := <-c.replyCh
		if proto.Kind(msg.Kind) != proto.MsgDataSetResp {
			continue
		}
		gotID, applied, ok := proto.DecodeDataSetRespPayload(msg.Payload())
		if !ok || gotID != reqID {
			continue
		}
		return applied, nil
	}
}

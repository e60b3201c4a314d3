// Package vfs is the typed client side of the vfs service: it owns a reply
// endpoint, correlates responses by request ID and blocks the calling task
// until its answer arrives.
package vfs

import (
	"errors"
	"fmt"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Entry describes a directory entry.
type Entry struct {
	Name string
	Type proto.VFSEntryType
	Size uint32
}

type Client struct {
	vfsCap kernel.Capability

	replyCap     kernel.Capability
	replyCapXfer kernel.Capability
	replyCh      <-chan kernel.Message

	nextRequestID uint32
}

func New(vfsCap kernel.Capability) *Client {
	return &Client{vfsCap: vfsCap, nextRequestID: 1}
}

func (c *Client) ensureReply(ctx *kernel.Context) error {
	if c.replyCh != nil {
		return nil
	}

	ep := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !ep.Valid() {
		return errors.New("vfs client: failed to allocate reply endpoint")
	}
	ch, ok := ctx.RecvChan(ep.Restrict(kernel.RightRecv))
	if !ok {
		return errors.New("vfs client: failed to receive from reply endpoint")
	}

	c.replyCap = ep
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
		res := ctx.SendToCapResult(c.vfsCap, uint16(kind), payload, c.replyCapXfer)
		switch res {
		case kernel.SendOK:
			return nil
		case kernel.SendErrQueueFull:
			ctx.BlockOnTick()
		default:
			return fmt.Errorf("vfs client send %s: %s", kind, res)
		}
	}
}

// List returns the entries of a directory.
func (c *Client) List(ctx *kernel.Context, path string) ([]Entry, error) {
	if err := c.ensureReply(ctx); err != nil {
		return nil, err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgVFSList, proto.VFSListPayload(reqID, path)); err != nil {
		return nil, err
	}

	var out []Entry
	for {
		msg := <-c.replyCh
		switch proto.Kind(msg.Kind) {
		case proto.MsgError:
			if err, match := c.matchError(&msg, proto.MsgVFSList, reqID, "vfs list"); match {
				return nil, err
			}
		case proto.MsgVFSListResp:
			gotID, done, typ, size, name, ok := proto.DecodeVFSListRespPayload(msg.Payload())
			if !ok || gotID != reqID {
				continue
			}
			if done {
				return out, nil
			}
			out = append(out, Entry{Name: name, Type: typ, Size: size})
		}
	}
}

// Stat returns the type and size of a path.
func (c *Client) Stat(ctx *kernel.Context, path string) (proto.VFSEntryType, uint32, error) {
	if err := c.ensureReply(ctx); err != nil {
		return 0, 0, err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgVFSStat, proto.VFSStatPayload(reqID, path)); err != nil {
		return 0, 0, err
	}

	for {
		msg := <-c.replyCh
		switch proto.Kind(msg.Kind) {
		case proto.MsgError:
			if err, match := c.matchError(&msg, proto.MsgVFSStat, reqID, "vfs stat"); match {
				return 0, 0, err
			}
		case proto.MsgVFSStatResp:
			gotID, typ, size, ok := proto.DecodeVFSStatRespPayload(msg.Payload())
			if !ok || gotID != reqID {
				continue
			}
			return typ, size, nil
		}
	}
}

// ReadAt reads up to maxBytes bytes at off.
func (c *Client) ReadAt(ctx *kernel.Context, path string, off uint32, maxBytes uint16) ([]byte, bool, error) {
	if err := c.ensureReply(ctx); err != nil {
		return nil, false, err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgVFSRead, proto.VFSReadPayload(reqID, path, off, maxBytes)); err != nil {
		return nil, false, err
	}

	for {
		msg := <-c.replyCh
		switch proto.Kind(msg.Kind) {
		case proto.MsgError:
			if err, match := c.matchError(&msg, proto.MsgVFSRead, reqID, "vfs read"); match {
				return nil, false, err
			}
		case proto.MsgVFSReadResp:
			gotID, gotOff, eof, data, ok := proto.DecodeVFSReadRespPayload(msg.Payload())
			if !ok || gotID != reqID || gotOff != off {
				continue
			}
			out := make([]byte, len(data))
			copy(out, data)
			return out, eof, nil
		}
	}
}

// Remove deletes a file.
func (c *Client) Remove(ctx *kernel.Context, path string) error {
	if err := c.ensureReply(ctx); err != nil {
		return err
	}

	reqID := c.nextID()
	if err := c.send(ctx, proto.MsgVFSRemove, proto.VFSRemovePayload(reqID, path)); err != nil {
		return err
	}

	for {
		msg := <-c.replyCh
		switch proto.Kind(msg.Kind) {
		case proto.MsgError:
			if err, match := c.matchError(&msg, proto.MsgVFSRemove, reqID, "vfs remove"); match {
				return err
			}
		case proto.MsgVFSRemoveResp:
			gotID, ok := proto.DecodeVFSRemoveRespPayload(msg.Payload())
			if !ok || gotID != reqID {
				continue
			}
			return nil
		}
	}
}

// matchError decodes a MsgError and reports whether it belongs to this
// request. Errors for other requests are skipped by the caller's loop.
func (c *Client) matchError(msg *kernel.Message, ref proto.Kind, reqID uint32, op string) (error, bool) {
	code, gotRef, detail, ok := proto.DecodeErrorPayload(msg.Payload())
	if !ok || gotRef != ref {
		return fmt.Errorf("%s: %s", op, code), true
	}
	gotID, rest, ok := proto.DecodeErrorDetailWithRequestID(detail)
	if !ok {
		return fmt.Errorf("%s: %s", op, code), true
	}
	if gotID != reqID {
		return nil, false
	}
	return fmt.Errorf("%s: %s: %s", op, code, string(rest)), true
}

package vfs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Service owns the mounted filesystems and answers list/stat/read/remove
// requests. Replies go to the capability transferred with each request.
type Service struct {
	inCap kernel.Capability
	flash FS
	sd    FS
}

// New builds a service over already-mounted filesystems. Either handle may
// be nil when the medium is absent.
func New(inCap kernel.Capability, flash, sd FS) *Service {
	return &Service{inCap: inCap, flash: flash, sd: sd}
}

// resolve routes a path to a mounted filesystem and the path relative to
// that mount. Without a card, /sd falls through to the flash tree so the
// prefix still works in the simulator.
func (s *Service) resolve(path string) (FS, string, bool) {
	if path == "/sd" || strings.HasPrefix(path, "/sd/") {
		if s.sd != nil {
			rel := strings.TrimPrefix(path, "/sd")
			if rel == "" {
				rel = "/"
			}
			return s.sd, rel, true
		}
		if s.flash != nil {
			return s.flash, path, true
		}
		return nil, "", false
	}
	if s.flash == nil {
		return nil, "", false
	}
	return s.flash, path, true
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.inCap)
	if !ok {
		return
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgVFSList:
			s.handleList(ctx, msg)
		case proto.MsgVFSStat:
			s.handleStat(ctx, msg)
		case proto.MsgVFSRead:
			s.handleRead(ctx, msg)
		case proto.MsgVFSRemove:
			s.handleRemove(ctx, msg)
		}
	}
}

func (s *Service) handleList(ctx *kernel.Context, msg kernel.Message) {
	reply := msg.Cap
	requestID, path, ok := proto.DecodeVFSListPayload(msg.Payload())
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrBadMessage, proto.MsgVFSList, 0, "decode list")
		return
	}

	fs, rel, ok := s.resolve(path)
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrNotFound, proto.MsgVFSList, requestID, "no filesystem")
		return
	}

	if err := fs.ListDir(rel, func(name string, info Info) bool {
		_ = s.send(ctx, reply, proto.MsgVFSListResp,
			proto.VFSListRespPayload(requestID, false, info.Type, info.Size, name))
		return true
	}); err != nil {
		_ = s.sendErr(ctx, reply, mapVFSError(err), proto.MsgVFSList, requestID, err.Error())
		return
	}

	_ = s.send(ctx, reply, proto.MsgVFSListResp,
		proto.VFSListRespPayload(requestID, true, proto.VFSEntryUnknown, 0, ""))
}

func (s *Service) handleStat(ctx *kernel.Context, msg kernel.Message) {
	reply := msg.Cap
	requestID, path, ok := proto.DecodeVFSStatPayload(msg.Payload())
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrBadMessage, proto.MsgVFSStat, 0, "decode stat")
		return
	}

	fs, rel, ok := s.resolve(path)
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrNotFound, proto.MsgVFSStat, requestID, "no filesystem")
		return
	}

	info, err := fs.Stat(rel)
	if err != nil {
		_ = s.sendErr(ctx, reply, mapVFSError(err), proto.MsgVFSStat, requestID, err.Error())
		return
	}
	_ = s.send(ctx, reply, proto.MsgVFSStatResp,
		proto.VFSStatRespPayload(requestID, info.Type, info.Size))
}

func (s *Service) handleRead(ctx *kernel.Context, msg kernel.Message) {
	reply := msg.Cap
	requestID, path, off, maxBytes, ok := proto.DecodeVFSReadPayload(msg.Payload())
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrBadMessage, proto.MsgVFSRead, 0, "decode read")
		return
	}

	fs, rel, ok := s.resolve(path)
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrNotFound, proto.MsgVFSRead, requestID, "no filesystem")
		return
	}

	max := int(maxBytes)
	maxPayload := kernel.MaxMessageBytes - 11
	if max > maxPayload {
		max = maxPayload
	}
	if max < 0 {
		max = 0
	}
	buf := make([]byte, max)

	n, eof, err := fs.ReadAt(rel, buf, off)
	if err != nil {
		_ = s.sendErr(ctx, reply, mapVFSError(err), proto.MsgVFSRead, requestID, err.Error())
		return
	}
	_ = s.send(ctx, reply, proto.MsgVFSReadResp,
		proto.VFSReadRespPayload(requestID, off, eof, buf[:n]))
}

func (s *Service) handleRemove(ctx *kernel.Context, msg kernel.Message) {
	reply := msg.Cap
	requestID, path, ok := proto.DecodeVFSRemovePayload(msg.Payload())
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrBadMessage, proto.MsgVFSRemove, 0, "decode remove")
		return
	}

	fs, rel, ok := s.resolve(path)
	if !ok {
		_ = s.sendErr(ctx, reply, proto.ErrNotFound, proto.MsgVFSRemove, requestID, "no filesystem")
		return
	}

	if err := fs.Remove(rel); err != nil {
		_ = s.sendErr(ctx, reply, mapVFSError(err), proto.MsgVFSRemove, requestID, err.Error())
		return
	}
	_ = s.send(ctx, reply, proto.MsgVFSRemoveResp, proto.VFSRemoveRespPayload(requestID))
}

func (s *Service) send(ctx *kernel.Context, to kernel.Capability, kind proto.Kind, payload []byte) error {
	for {
		res := ctx.SendToCapResult(to, uint16(kind), payload, kernel.Capability{})
		switch res {
		case kernel.SendOK:
			return nil
		case kernel.SendErrQueueFull:
			ctx.BlockOnTick()
		default:
			return fmt.Errorf("vfs send %s: %s", kind, res)
		}
	}
}

func (s *Service) sendErr(
	ctx *kernel.Context,
	to kernel.Capability,
	code proto.ErrCode,
	ref proto.Kind,
	requestID uint32,
	detail string,
) error {
	if !to.Valid() {
		return nil
	}
	d := proto.ErrorDetailWithRequestID(requestID, []byte(detail))
	return s.send(ctx, to, proto.MsgError, proto.ErrorPayload(code, ref, d))
}

func mapVFSError(err error) proto.ErrCode {
	switch {
	case errors.Is(err, ErrNotFound):
		return proto.ErrNotFound
	case errors.Is(err, ErrExists):
		return proto.ErrBusy
	case errors.Is(err, ErrNoSpace):
		return proto.ErrTooLarge
	case errors.Is(err, ErrNotDir), errors.Is(err, ErrIsDir), errors.Is(err, ErrInvalid):
		return proto.ErrBadMessage
	default:
		return proto.ErrInternal
	}
}

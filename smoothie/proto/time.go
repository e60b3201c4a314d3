package proto

import "encoding/binary"

// TickSubscribePayload encodes a MsgTickSubscribe request. The subscriber's
// delivery capability travels in the message envelope.
//
// Layout: empty.
func TickSubscribePayload() []byte {
	return nil
}

// SecondTickPayload encodes a MsgSecondTick broadcast.
//
// Layout (little-endian):
//   - u32: seconds since boot
func SecondTickPayload(seconds uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf[0:4], seconds)
	return buf
}

// DecodeSecondTickPayload decodes a MsgSecondTick payload.
func DecodeSecondTickPayload(b []byte) (seconds uint32, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b[0:4]), true
}

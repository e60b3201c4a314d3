package proto

import "encoding/binary"

// Console line and serial payloads carry raw bytes; the reply capability
// travels in the message envelope, not the payload.

// ConsoleLinePayload encodes a MsgConsoleLine message.
//
// Layout: raw line bytes (UTF-8, no terminator).
func ConsoleLinePayload(line string) []byte {
	return []byte(line)
}

// DecodeConsoleLinePayload decodes a MsgConsoleLine payload.
func DecodeConsoleLinePayload(b []byte) string {
	return string(b)
}

// SerialWritePayload encodes a MsgSerialWrite message.
//
// Layout: raw bytes to put on the wire.
func SerialWritePayload(data []byte) []byte {
	return data
}

// ControlCodePayload encodes a MsgControlCode message.
//
// Layout (little-endian):
//   - u16: control code
//   - bytes: argument (UTF-8)
func ControlCodePayload(code uint16, arg string) []byte {
	a := []byte(arg)
	buf := make([]byte, 2+len(a))
	binary.LittleEndian.PutUint16(buf[0:2], code)
	copy(buf[2:], a)
	return buf
}

// DecodeControlCodePayload decodes a MsgControlCode payload.
func DecodeControlCodePayload(b []byte) (code uint16, arg string, ok bool) {
	if len(b) < 2 {
		return 0, "", false
	}
	return binary.LittleEndian.Uint16(b[0:2]), string(b[2:]), true
}

// Control codes understood by the console.
const (
	ControlListFiles  = 20
	ControlRemoveFile = 30
)

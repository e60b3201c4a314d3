package proto

// LogLinePayload encodes a MsgLogLine message.
//
// Layout: raw line bytes (UTF-8, no terminator).
func LogLinePayload(line string) []byte {
	return []byte(line)
}

// DecodeLogLinePayload decodes a MsgLogLine payload.
func DecodeLogLinePayload(b []byte) string {
	return string(b)
}

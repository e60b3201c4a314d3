package proto

import (
	"encoding/binary"
	"math"
)

// Public-data requests address a value by a (domain, item, field) triple of
// keyword fingerprints, mirroring how modules publish their state. A field
// of 0 means "the module's default value" for sets.

// DataGetPayload encodes a MsgDataGet request.
//
// Layout (little-endian):
//   - u32: request id
//   - u16: domain fingerprint
//   - u16: item fingerprint
//   - u16: field fingerprint
func DataGetPayload(requestID uint32, domain, item, field uint16) []byte {
	buf := make([]byte, 10)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint16(buf[4:6], domain)
	binary.LittleEndian.PutUint16(buf[6:8], item)
	binary.LittleEndian.PutUint16(buf[8:10], field)
	return buf
}

// DecodeDataGetPayload decodes a MsgDataGet payload.
func DecodeDataGetPayload(b []byte) (requestID uint32, domain, item, field uint16, ok bool) {
	if len(b) != 10 {
		return 0, 0, 0, 0, false
	}
	requestID = binary.LittleEndian.Uint32(b[0:4])
	domain = binary.LittleEndian.Uint16(b[4:6])
	item = binary.LittleEndian.Uint16(b[6:8])
	field = binary.LittleEndian.Uint16(b[8:10])
	return requestID, domain, item, field, true
}

// DataGetRespPayload encodes a MsgDataGetResp response.
//
// Layout (little-endian):
//   - u32: request id
//   - u8: found flag (0/1)
//   - bytes: value (module-defined encoding, empty when not found)
func DataGetRespPayload(requestID uint32, found bool, value []byte) []byte {
	buf := make([]byte, 5+len(value))
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	if found {
		buf[4] = 1
	}
	copy(buf[5:], value)
	return buf
}

// DecodeDataGetRespPayload decodes a MsgDataGetResp payload.
func DecodeDataGetRespPayload(b []byte) (requestID uint32, found bool, value []byte, ok bool) {
	if len(b) < 5 {
		return 0, false, nil, false
	}
	return binary.LittleEndian.Uint32(b[0:4]), b[4] != 0, b[5:], true
}

// DataSetPayload encodes a MsgDataSet request.
//
// Layout (little-endian):
//   - u32: request id
//   - u16: domain fingerprint
//   - u16: item fingerprint
//   - u16: field fingerprint (0 for the module default)
//   - bytes: value (module-defined encoding)
func DataSetPayload(requestID uint32, domain, item, field uint16, value []byte) []byte {
	buf := make([]byte, 10+len(value))
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint16(buf[4:6], domain)
	binary.LittleEndian.PutUint16(buf[6:8], item)
	binary.LittleEndian.PutUint16(buf[8:10], field)
	copy(buf[10:], value)
	return buf
}

// DecodeDataSetPayload decodes a MsgDataSet payload.
func DecodeDataSetPayload(b []byte) (requestID uint32, domain, item, field uint16, value []byte, ok bool) {
	if len(b) < 10 {
		return 0, 0, 0, 0, nil, false
	}
	requestID = binary.LittleEndian.Uint32(b[0:4])
	domain = binary.LittleEndian.Uint16(b[4:6])
	item = binary.LittleEndian.Uint16(b[6:8])
	field = binary.LittleEndian.Uint16(b[8:10])
	return requestID, domain, item, field, b[10:], true
}

// DataSetRespPayload encodes a MsgDataSetResp response.
//
// Layout (little-endian):
//   - u32: request id
//   - u8: applied flag (0/1)
func DataSetRespPayload(requestID uint32, applied bool) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	if applied {
		buf[4] = 1
	}
	return buf
}

// DecodeDataSetRespPayload decodes a MsgDataSetResp payload.
func DecodeDataSetRespPayload(b []byte) (requestID uint32, applied bool, ok bool) {
	if len(b) != 5 {
		return 0, false, false
	}
	return binary.LittleEndian.Uint32(b[0:4]), b[4] != 0, true
}

// TempStatusValue encodes a temperature controller reading.
//
// Layout (little-endian):
//   - f32: current temperature
//   - f32: target temperature
//   - u8: pwm duty (0-255)
func TempStatusValue(current, target float32, duty uint8) []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(current))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(target))
	buf[8] = duty
	return buf
}

// DecodeTempStatusValue decodes a TempStatusValue.
func DecodeTempStatusValue(b []byte) (current, target float32, duty uint8, ok bool) {
	if len(b) != 9 {
		return 0, 0, 0, false
	}
	current = math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	target = math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	return current, target, b[8], true
}

// TempTargetValue encodes a target temperature for a set request.
//
// Layout (little-endian):
//   - f32: target temperature
func TempTargetValue(target float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(target))
	return buf
}

// DecodeTempTargetValue decodes a TempTargetValue.
func DecodeTempTargetValue(b []byte) (target float32, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])), true
}

// PositionValue encodes a machine position.
//
// Layout (little-endian):
//   - f32: X
//   - f32: Y
//   - f32: Z
func PositionValue(x, y, z float32) []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(z))
	return buf
}

// DecodePositionValue decodes a PositionValue.
func DecodePositionValue(b []byte) (x, y, z float32, ok bool) {
	if len(b) != 12 {
		return 0, 0, 0, false
	}
	x = math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))
	y = math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))
	z = math.Float32frombits(binary.LittleEndian.Uint32(b[8:12]))
	return x, y, z, true
}

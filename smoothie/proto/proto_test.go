package proto

import "testing"

func TestVFSListRoundTrip(t *testing.T) {
	b := VFSListPayload(42, "/sd/gcode")
	id, path, ok := DecodeVFSListPayload(b)
	if !ok || id != 42 || path != "/sd/gcode" {
		t.Fatalf("decode mismatch: id=%d path=%q ok=%v", id, path, ok)
	}
}

func TestDecodeRejectsTruncatedPayloads(t *testing.T) {
	if _, _, ok := DecodeVFSListPayload([]byte{1, 2, 3}); ok {
		t.Fatal("expected short list payload to be rejected")
	}
	if _, _, _, _, ok := DecodeVFSReadPayload(VFSReadPayload(1, "/a", 0, 64)[:8]); ok {
		t.Fatal("expected truncated read payload to be rejected")
	}
	if _, _, ok := DecodeControlCodePayload([]byte{20}); ok {
		t.Fatal("expected one-byte control payload to be rejected")
	}
	if _, _, ok := DecodeDataSetRespPayload([]byte{0, 0, 0, 0}); ok {
		t.Fatal("expected short set response to be rejected")
	}
}

func TestDecodeRejectsLengthMismatch(t *testing.T) {
	b := VFSListPayload(7, "/flash")
	// Claimed path length no longer matches the actual payload size.
	if _, _, ok := DecodeVFSListPayload(b[:len(b)-1]); ok {
		t.Fatal("expected mismatched path length to be rejected")
	}
}

func TestDataGetRoundTrip(t *testing.T) {
	b := DataGetPayload(9, 0x1234, 0x5678, 0x9abc)
	id, domain, item, field, ok := DecodeDataGetPayload(b)
	if !ok || id != 9 || domain != 0x1234 || item != 0x5678 || field != 0x9abc {
		t.Fatalf("decode mismatch: id=%d domain=%#x item=%#x field=%#x ok=%v",
			id, domain, item, field, ok)
	}
}

func TestTempStatusValueRoundTrip(t *testing.T) {
	b := TempStatusValue(182.5, 185, 204)
	current, target, duty, ok := DecodeTempStatusValue(b)
	if !ok || current != 182.5 || target != 185 || duty != 204 {
		t.Fatalf("decode mismatch: current=%v target=%v duty=%d ok=%v",
			current, target, duty, ok)
	}
}

func TestPositionValueRoundTrip(t *testing.T) {
	b := PositionValue(10.5, -3.25, 0)
	x, y, z, ok := DecodePositionValue(b)
	if !ok || x != 10.5 || y != -3.25 || z != 0 {
		t.Fatalf("decode mismatch: x=%v y=%v z=%v ok=%v", x, y, z, ok)
	}
}

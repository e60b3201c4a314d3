package tempcontrol

import (
	"testing"

	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

func TestGetUnknownController(t *testing.T) {
	b := NewBank("hotend")
	if _, found := b.Get(checksum.Of("chamber"), 0); found {
		t.Fatal("unknown controller reported found")
	}
}

func TestSetTargetAndReadBack(t *testing.T) {
	b := NewBank("hotend", "bed")
	bed := checksum.Of("bed")

	if !b.Set(bed, 0, proto.TempTargetValue(185)) {
		t.Fatal("set rejected")
	}
	value, found := b.Get(bed, checksum.Of("current_temperature"))
	if !found {
		t.Fatal("bed not found")
	}
	current, target, _, ok := proto.DecodeTempStatusValue(value)
	if !ok || target != 185 || current != ambient {
		t.Fatalf("status = %v/%v ok=%v, want current %v target 185", current, target, ok, float32(ambient))
	}
}

func TestSetRejectsUnknownFieldAndBadValue(t *testing.T) {
	b := NewBank("bed")
	bed := checksum.Of("bed")
	if b.Set(bed, checksum.Of("current_temperature"), proto.TempTargetValue(50)) {
		t.Fatal("set accepted a read-only field")
	}
	if b.Set(bed, 0, []byte{1, 2}) {
		t.Fatal("set accepted a short value")
	}
}

func TestTickApproachesTarget(t *testing.T) {
	b := NewBank("hotend")
	hotend := checksum.Of("hotend")
	b.Set(hotend, 0, proto.TempTargetValue(225))

	var last float32 = ambient
	for i := 0; i < 20; i++ {
		b.Tick(uint32(i + 1))
		value, _ := b.Get(hotend, 0)
		current, _, _, _ := proto.DecodeTempStatusValue(value)
		if current <= last {
			t.Fatalf("tick %d: temperature %v did not rise past %v", i+1, current, last)
		}
		if current > 225 {
			t.Fatalf("tick %d: overshoot to %v", i+1, current)
		}
		last = current
	}
	if last < 220 {
		t.Fatalf("after 20 ticks current %v, want close to 225", last)
	}
}

func TestTickDutyDropsAsTargetIsReached(t *testing.T) {
	b := NewBank("hotend")
	hotend := checksum.Of("hotend")
	b.Set(hotend, 0, proto.TempTargetValue(100))

	b.Tick(1)
	value, _ := b.Get(hotend, 0)
	_, _, dutyEarly, _ := proto.DecodeTempStatusValue(value)

	for i := 2; i <= 30; i++ {
		b.Tick(uint32(i))
	}
	value, _ = b.Get(hotend, 0)
	_, _, dutyLate, _ := proto.DecodeTempStatusValue(value)

	if dutyLate >= dutyEarly {
		t.Fatalf("duty did not drop: early %d late %d", dutyEarly, dutyLate)
	}
}

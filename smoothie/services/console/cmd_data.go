package console

import (
	"strconv"

	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

var (
	getTempCS = checksum.Of("temp")
	getPosCS  = checksum.Of("pos")

	temperatureControlCS = checksum.Of("temperature_control")
	currentTemperatureCS = checksum.Of("current_temperature")
	robotCS              = checksum.Of("robot")
	currentPositionCS    = checksum.Of("current_position")
)

// cmdGet bridges shell arguments to the public-data exchange. Subcommands
// other than temp and pos are ignored.
func (s *Service) cmdGet(ctx *kernel.Context, args string, out Stream) {
	what, rest := shiftToken(args)
	switch checksum.Of(what) {
	case getTempCS:
		name, _ := shiftToken(rest)
		value, found, err := s.data.Get(ctx, temperatureControlCS, checksum.Of(name), currentTemperatureCS)
		if err == nil && found {
			if current, target, duty, ok := proto.DecodeTempStatusValue(value); ok {
				out.Printf("%s temp: %f/%f @%d\r\n", name, current, target, duty)
				return
			}
		}
		out.Printf("%s is not a known temperature device\r\n", name)

	case getPosCS:
		value, found, err := s.data.Get(ctx, robotCS, currentPositionCS, 0)
		if err == nil && found {
			if x, y, z, ok := proto.DecodePositionValue(value); ok {
				out.Printf("Position X: %f, Y: %f, Z: %f\r\n", x, y, z)
				return
			}
		}
		out.Printf("get pos command failed\r\n")
	}
}

// cmdSetTemp writes a temperature setpoint. A missing or unparseable value
// silently becomes 0.0; that leniency is part of the command's contract.
func (s *Service) cmdSetTemp(ctx *kernel.Context, args string, out Stream) {
	name, rest := shiftToken(args)
	valueToken, _ := shiftToken(rest)
	t := 0.0
	if valueToken != "" {
		if v, err := strconv.ParseFloat(valueToken, 64); err == nil {
			t = v
		}
	}

	applied, err := s.data.Set(ctx, temperatureControlCS, checksum.Of(name), 0, proto.TempTargetValue(float32(t)))
	if err == nil && applied {
		out.Printf("%s temp set to: %3.1f\r\n", name, t)
	} else {
		out.Printf("%s is not a known temperature device\r\n", name)
	}
}

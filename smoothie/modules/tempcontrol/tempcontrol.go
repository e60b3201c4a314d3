// Package tempcontrol simulates a bank of temperature controllers and
// publishes their state on the public-data exchange.
package tempcontrol

import (
	"sync"

	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Domain is the public-data domain fingerprint for temperature control.
var Domain = checksum.Of("temperature_control")

var (
	currentTemperatureCS = checksum.Of("current_temperature")
	targetTemperatureCS  = checksum.Of("target_temperature")
)

const (
	ambient = 25.0
	// Fraction of the remaining delta closed per second.
	approachRate = 0.25
)

type controller struct {
	name    string
	item    uint16
	current float32
	target  float32
	duty    uint8
}

// Bank is a set of named controllers. It implements pubdata.Provider and
// ticks once per second toward each controller's target.
type Bank struct {
	mu          sync.Mutex
	controllers []*controller
}

// NewBank creates controllers for the given designators, all idle at
// ambient temperature.
func NewBank(names ...string) *Bank {
	b := &Bank{}
	for _, name := range names {
		b.controllers = append(b.controllers, &controller{
			name:    name,
			item:    checksum.Of(name),
			current: ambient,
		})
	}
	return b
}

func (b *Bank) find(item uint16) *controller {
	for _, c := range b.controllers {
		if c.item == item {
			return c
		}
	}
	return nil
}

func (b *Bank) Get(item, field uint16) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.find(item)
	if c == nil {
		return nil, false
	}
	switch field {
	case 0, currentTemperatureCS:
		return proto.TempStatusValue(c.current, c.target, c.duty), true
	case targetTemperatureCS:
		return proto.TempTargetValue(c.target), true
	}
	return nil, false
}

func (b *Bank) Set(item, field uint16, value []byte) bool {
	if field != 0 && field != targetTemperatureCS {
		return false
	}
	target, ok := proto.DecodeTempTargetValue(value)
	if !ok {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c := b.find(item)
	if c == nil {
		return false
	}
	c.target = target
	return true
}

// Tick advances every controller one second toward its target with a
// first-order response. Duty is the normalized remaining error.
func (b *Bank) Tick(seconds uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.controllers {
		goal := c.target
		if goal <= 0 {
			goal = ambient
		}
		delta := goal - c.current
		c.current += delta * approachRate

		if c.target > ambient {
			err := c.target - c.current
			if err < 0 {
				err = 0
			}
			frac := err / (c.target - ambient)
			if frac > 1 {
				frac = 1
			}
			c.duty = uint8(frac * 255)
		} else {
			c.duty = 0
		}
	}
}

// Package robot tracks the machine position and publishes it on the
// public-data exchange.
package robot

import (
	"sync"

	"github.com/ZzubbuzZ/Smoothie/smoothie/internal/checksum"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// Domain is the public-data domain fingerprint for the robot.
var Domain = checksum.Of("robot")

var currentPositionCS = checksum.Of("current_position")

// Robot holds the last commanded position. It implements pubdata.Provider.
type Robot struct {
	mu      sync.Mutex
	x, y, z float32
}

func New() *Robot {
	return &Robot{}
}

func (r *Robot) Get(item, field uint16) ([]byte, bool) {
	if item != currentPositionCS {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return proto.PositionValue(r.x, r.y, r.z), true
}

func (r *Robot) Set(item, field uint16, value []byte) bool {
	if item != currentPositionCS {
		return false
	}
	x, y, z, ok := proto.DecodePositionValue(value)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y, r.z = x, y, z
	return true
}

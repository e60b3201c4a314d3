//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HostConfig controls the host runner.
type HostConfig struct {
	Hz    int
	Ticks uint64
}

// RunHost drives the firmware as an ordinary process: it builds the host
// HAL, hands it to newApp and then pumps ticks at the configured rate until
// the context ends or the tick budget runs out.
func RunHost(ctx context.Context, newApp func(HAL) func() error, cfg HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New().(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid host hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// Package app assembles the firmware: it creates the kernel, allocates the
// service endpoints, wires capabilities between the services and starts the
// tick pump.
package app

import (
	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/internal/buildinfo"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/modules/robot"
	"github.com/ZzubbuzZ/Smoothie/smoothie/modules/tempcontrol"
	"github.com/ZzubbuzZ/Smoothie/smoothie/services/console"
	"github.com/ZzubbuzZ/Smoothie/smoothie/services/gcode"
	"github.com/ZzubbuzZ/Smoothie/smoothie/services/logger"
	"github.com/ZzubbuzZ/Smoothie/smoothie/services/pubdata"
	"github.com/ZzubbuzZ/Smoothie/smoothie/services/serial"
	timesvc "github.com/ZzubbuzZ/Smoothie/smoothie/services/time"
	vfssvc "github.com/ZzubbuzZ/Smoothie/smoothie/services/vfs"
)

type system struct {
	k *kernel.Kernel
}

type Config struct {
	// TickHz is the kernel tick rate the HAL delivers, used to derive
	// second ticks.
	TickHz uint32
	// Heaters are the temperature controller designators.
	Heaters []string
}

func defaults(cfg Config) Config {
	if cfg.TickHz == 0 {
		cfg.TickHz = 1000
	}
	if len(cfg.Heaters) == 0 {
		cfg.Heaters = []string{"hotend", "bed"}
	}
	return cfg
}

// New initializes and starts the firmware with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// Run starts the firmware and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, defaults(cfg))
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	vfsEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	dataEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	conEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	gcodeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	serialEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(cfg.TickHz, timeEP.Restrict(kernel.RightRecv)))
	k.AddTask(vfssvc.NewPlatform(h.Flash(), vfsEP.Restrict(kernel.RightRecv)))

	data := pubdata.New(dataEP)
	data.SubscribeTicks(timeEP.Restrict(kernel.RightSend))
	data.Register(tempcontrol.Domain, tempcontrol.NewBank(cfg.Heaters...))
	data.Register(robot.Domain, robot.New())
	k.AddTask(data)

	k.AddTask(console.New(console.Config{
		In:     conEP,
		Serial: serialEP.Restrict(kernel.RightSend),
		VFS:    vfsEP.Restrict(kernel.RightSend),
		Data:   dataEP.Restrict(kernel.RightSend),
		Log:    logEP.Restrict(kernel.RightSend),
		Time:   timeEP.Restrict(kernel.RightSend),
		Device: h.Device(),
		Heap:   h.Heap(),
	}))

	k.AddTask(gcode.New(gcodeEP.Restrict(kernel.RightRecv),
		conEP.Restrict(kernel.RightSend), dataEP.Restrict(kernel.RightSend)))
	k.AddTask(serial.New(h.Serial(), serialEP, gcodeEP.Restrict(kernel.RightSend)))

	if l := h.Logger(); l != nil {
		l.WriteLineString("smoothie: console up, build " + buildinfo.Short())
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}

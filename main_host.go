//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/ZzubbuzZ/Smoothie/app"
	"github.com/ZzubbuzZ/Smoothie/hal"
)

func main() {
	var cfg hal.HostConfig
	flag.IntVar(&cfg.Hz, "hz", 1000, "Tick rate.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks (0 = run forever).")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := hal.RunHost(ctx, func(h hal.HAL) func() error {
		return app.NewWithConfig(h, app.Config{TickHz: uint32(cfg.Hz)})
	}, cfg)
	if err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

//go:build tinygo

package main

import (
	"github.com/ZzubbuzZ/Smoothie/app"
	"github.com/ZzubbuzZ/Smoothie/hal"
)

func main() {
	app.Run(hal.New())
}

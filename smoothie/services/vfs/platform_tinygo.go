//go:build tinygo && baremetal && (rp2040 || rp2350)

package vfs

import (
	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
)

// NewPlatform mounts littlefs on the tail of the on-chip flash and FAT on
// the SD card when one is inserted.
func NewPlatform(flash hal.Flash, inCap kernel.Capability) *Service {
	var fs FS
	if flash != nil {
		if mounted, err := NewFlashFS(flash); err == nil {
			fs = mounted
		}
	}
	return New(inCap, fs, initSD())
}

//go:build !tinygo

package vfs

import (
	"github.com/ZzubbuzZ/Smoothie/hal"
	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
)

// NewPlatform mounts the host filesystems: littlefs over the flash image
// file, no card. /sd resolves into the flash tree (see resolve).
func NewPlatform(flash hal.Flash, inCap kernel.Capability) *Service {
	var fs FS
	if flash != nil {
		if mounted, err := NewFlashFS(flash); err == nil {
			fs = mounted
		}
	}
	return New(inCap, fs, nil)
}

// Package vfs serves filesystem requests over IPC. Paths are routed by
// mount prefix: /sd goes to the card, everything else to on-chip flash.
package vfs

import (
	"errors"

	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

var (
	// ErrNotFound indicates that a path does not exist.
	ErrNotFound = errors.New("vfs: not found")
	// ErrExists indicates that a path already exists.
	ErrExists = errors.New("vfs: already exists")
	// ErrNotDir indicates that a path is not a directory.
	ErrNotDir = errors.New("vfs: not a directory")
	// ErrIsDir indicates that a path is a directory when a file was expected.
	ErrIsDir = errors.New("vfs: is a directory")
	// ErrNoSpace indicates that the filesystem is out of space.
	ErrNoSpace = errors.New("vfs: no space")
	// ErrInvalid indicates invalid arguments or filesystem state.
	ErrInvalid = errors.New("vfs: invalid")
)

// Info describes a filesystem entry.
type Info struct {
	Type proto.VFSEntryType
	Size uint32
}

// FS is the narrow handle the service needs from a mounted filesystem.
type FS interface {
	// ListDir calls fn for each entry; returning false stops the listing.
	ListDir(path string, fn func(name string, info Info) bool) error
	Stat(path string) (Info, error)
	// ReadAt reads up to len(p) bytes at off. eof reports whether the end
	// of the file was reached. The handle opens and closes the file per
	// call, so a caller abandoning a read leaks nothing.
	ReadAt(path string, p []byte, off uint32) (n int, eof bool, err error)
	Remove(path string) error
}

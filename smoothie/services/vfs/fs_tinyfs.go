package vfs

import (
	"errors"
	"io"
	"os"

	"tinygo.org/x/tinyfs"

	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// tinyfsFS adapts any mounted tinyfs filesystem to the service handle.
// mapErr translates backend error values into the vfs sentinels; backends
// with typed errors (fatfs) classify precisely, others pass through.
type tinyfsFS struct {
	fs     tinyfs.Filesystem
	mapErr func(op string, err error) error
}

func (t *tinyfsFS) ListDir(path string, fn func(name string, info Info) bool) error {
	if t == nil || t.fs == nil {
		return errors.New("vfs: not mounted")
	}
	f, err := t.fs.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return t.mapErr("open dir", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := f.Readdir(0)
	if err != nil {
		return t.mapErr("readdir", err)
	}
	for _, e := range entries {
		name := e.Name()
		if name == "." || name == ".." {
			continue
		}
		typ := proto.VFSEntryFile
		if e.IsDir() {
			typ = proto.VFSEntryDir
		}
		if !fn(name, Info{Type: typ, Size: uint32(e.Size())}) {
			return nil
		}
	}
	return nil
}

func (t *tinyfsFS) Stat(path string) (Info, error) {
	if t == nil || t.fs == nil {
		return Info{}, errors.New("vfs: not mounted")
	}
	fi, err := t.fs.Stat(path)
	if err != nil {
		return Info{}, t.mapErr("stat", err)
	}
	typ := proto.VFSEntryFile
	if fi.IsDir() {
		typ = proto.VFSEntryDir
	}
	return Info{Type: typ, Size: uint32(fi.Size())}, nil
}

func (t *tinyfsFS) ReadAt(path string, p []byte, off uint32) (n int, eof bool, err error) {
	if t == nil || t.fs == nil {
		return 0, false, errors.New("vfs: not mounted")
	}
	f, err := t.fs.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return 0, false, t.mapErr("open", err)
	}
	defer func() { _ = f.Close() }()

	seeker, ok := f.(io.Seeker)
	if !ok {
		return 0, false, t.mapErr("seek", errors.New("seek unsupported"))
	}
	if _, err := seeker.Seek(int64(off), io.SeekStart); err != nil {
		return 0, false, t.mapErr("seek", err)
	}
	if len(p) == 0 {
		return 0, false, nil
	}

	n, err = f.Read(p)
	if err == nil {
		return n, n < len(p), nil
	}
	if errors.Is(err, io.EOF) {
		return n, true, nil
	}
	return n, false, t.mapErr("read", err)
}

func (t *tinyfsFS) Remove(path string) error {
	if t == nil || t.fs == nil {
		return errors.New("vfs: not mounted")
	}
	return t.mapErr("remove", t.fs.Remove(path))
}

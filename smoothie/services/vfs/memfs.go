package vfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// MemFS is an in-memory FS used by tests and by anything that needs a
// scratch tree without a medium. Not safe for concurrent use; the vfs
// service serializes access.
type MemFS struct {
	dirs  map[string]bool
	files map[string][]byte
}

// NewMemFS returns a MemFS containing only the root directory.
func NewMemFS() *MemFS {
	return &MemFS{
		dirs:  map[string]bool{"/": true},
		files: map[string][]byte{},
	}
}

// normalize strips trailing slashes so /a/ and /a address the same entry.
func normalize(path string) string {
	if path == "" {
		return "/"
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// Mkdir creates a directory and any missing parents.
func (m *MemFS) Mkdir(path string) {
	path = normalize(path)
	for p := path; p != "/"; p = parentDir(p) {
		m.dirs[p] = true
	}
}

// WriteFile stores data at path, creating parent directories.
func (m *MemFS) WriteFile(path string, data []byte) {
	path = normalize(path)
	m.Mkdir(parentDir(path))
	m.files[path] = append([]byte(nil), data...)
}

func parentDir(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

func (m *MemFS) ListDir(path string, fn func(name string, info Info) bool) error {
	path = normalize(path)
	if !m.dirs[path] {
		return fmt.Errorf("memfs list %q: %w", path, ErrNotFound)
	}

	prefix := path
	if prefix != "/" {
		prefix += "/"
	}
	var names []string
	infos := map[string]Info{}
	for d := range m.dirs {
		if d != path && strings.HasPrefix(d, prefix) && !strings.Contains(d[len(prefix):], "/") {
			names = append(names, d[len(prefix):])
			infos[d[len(prefix):]] = Info{Type: proto.VFSEntryDir}
		}
	}
	for f, data := range m.files {
		if strings.HasPrefix(f, prefix) && !strings.Contains(f[len(prefix):], "/") {
			names = append(names, f[len(prefix):])
			infos[f[len(prefix):]] = Info{Type: proto.VFSEntryFile, Size: uint32(len(data))}
		}
	}
	sort.Strings(names)
	for _, n := range names {
		if !fn(n, infos[n]) {
			return nil
		}
	}
	return nil
}

func (m *MemFS) Stat(path string) (Info, error) {
	path = normalize(path)
	if m.dirs[path] {
		return Info{Type: proto.VFSEntryDir}, nil
	}
	if data, ok := m.files[path]; ok {
		return Info{Type: proto.VFSEntryFile, Size: uint32(len(data))}, nil
	}
	return Info{}, fmt.Errorf("memfs stat %q: %w", path, ErrNotFound)
}

func (m *MemFS) ReadAt(path string, p []byte, off uint32) (n int, eof bool, err error) {
	path = normalize(path)
	data, ok := m.files[path]
	if !ok {
		return 0, false, fmt.Errorf("memfs read %q: %w", path, ErrNotFound)
	}
	if int(off) >= len(data) {
		return 0, true, nil
	}
	n = copy(p, data[off:])
	return n, int(off)+n >= len(data), nil
}

func (m *MemFS) Remove(path string) error {
	path = normalize(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] && path != "/" {
		delete(m.dirs, path)
		return nil
	}
	return fmt.Errorf("memfs remove %q: %w", path, ErrNotFound)
}
